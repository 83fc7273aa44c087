package mathgame

// Level describes one difficulty tier of arithmetic drills.
type Level struct {
	Level      int      `yaml:"level" json:"level"`
	Operators  []string `yaml:"operators" json:"operators"`
	MaxOperand int      `yaml:"max_operand" json:"max_operand"`
}

// DefaultLevels is tuned for early primary school: sums to 10, then to
// 20, then times tables.
func DefaultLevels() []Level {
	return []Level{
		{Level: 1, Operators: []string{"+", "-"}, MaxOperand: 10},
		{Level: 2, Operators: []string{"+", "-"}, MaxOperand: 20},
		{Level: 3, Operators: []string{"+", "-", "*"}, MaxOperand: 12},
	}
}

// Problem is one issued question. The answer stays server-side; clients
// only ever see the prompt.
type Problem struct {
	ID       string `json:"id"`
	Level    int    `json:"level"`
	Left     int    `json:"left"`
	Right    int    `json:"right"`
	Operator string `json:"operator"`
	Prompt   string `json:"prompt"`

	answer int
}
