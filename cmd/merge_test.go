package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/synnheal/stepcalc/internal/domain"
	domainmocks "github.com/synnheal/stepcalc/internal/domain/mocks"
	m "github.com/synnheal/stepcalc/internal/model"
)

func TestMergeCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantReports m.Path
		wantInputs  []m.Path
	}{
		{
			name:        "shards of the default output",
			args:        []string{"merge"},
			wantReports: m.Path(".stepcalc-reports"),
		},
		{
			name:        "root output flag is passed through",
			args:        []string{"--output", "./reports-dir", "merge"},
			wantReports: m.Path("./reports-dir"),
		},
		{
			name:        "explicit report directories",
			args:        []string{"merge", "-o", "merged", "run-a", "run-b"},
			wantReports: m.Path("merged"),
			wantInputs:  []m.Path{"run-a", "run-b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)

			cmd := newRootCmd()
			cmd.AddCommand(newMergeCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			originalWorkflow := workflow
			workflow = mockWorkflow
			defer func() { workflow = originalWorkflow }()

			mockWorkflow.On("Merge", mock.Anything, mock.MatchedBy(func(args domain.MergeArgs) bool {
				return args.Reports == tt.wantReports && len(args.Inputs) == len(tt.wantInputs) &&
					(len(tt.wantInputs) == 0 || args.Inputs[0] == tt.wantInputs[0] && args.Inputs[1] == tt.wantInputs[1])
			})).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestMergeCmd_ReturnsWorkflowError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newMergeCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Merge", mock.Anything, mock.Anything).Return(domain.ErrNothingToMerge)

	cmd.SetArgs([]string{"merge"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrNothingToMerge)
}
