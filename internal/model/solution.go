package model

// Step is one boundary of a transformation trace.
type Step struct {
	Description string `yaml:"description" json:"description"`
	Expression  string `yaml:"expression" json:"expression"`
}

// Solution is the outcome of one successful engine call.
type Solution struct {
	Steps       []Step             `yaml:"steps" json:"steps"`
	FinalResult string             `yaml:"final_result" json:"final_result"`
	Variables   map[string]float64 `yaml:"variables,omitempty" json:"variables,omitempty"`
}
