package dto

type PromptOutput struct {
	ID             string
	Text           string
	Tags           []string
	MinCompletions int
	MaxCompletions int
}

type StemOutput struct {
	Exercise  string
	Week      int
	Day       int
	StemIndex int
	Theme     string
	Prompt    PromptOutput
}

type WeekOutput struct {
	Number int
	Theme  string
	Stems  []PromptOutput
}

type CustomOutput struct {
	Name     string
	Exercise string
	Title    string
	Time     string
	Stems    []PromptOutput
}

type ProgramOutput struct {
	Name       string
	Exercise   string
	Title      string
	Origin     string
	TotalWeeks int
	Weeks      []WeekOutput
	Custom     []CustomOutput
}

type ValidateOutput struct {
	Origin   string
	Problems []string
}

type Bounds struct {
	Min int
	Max int
}
