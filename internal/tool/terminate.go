package tool

import "context"

// Terminate signals that the interaction is complete.
type Terminate struct{}

// NewTerminate creates the tool.
func NewTerminate() *Terminate {
	return &Terminate{}
}

func (t *Terminate) Name() string { return "terminate" }

func (t *Terminate) Description() string {
	return "Terminate the interaction when the request is met or if the assistant cannot proceed further with the task."
}

func (t *Terminate) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{
				"type":        "string",
				"description": "The finish status of the interaction.",
				"enum":        []string{"success", "failure"},
			},
		},
		"required": []string{"status"},
	}
}

func (t *Terminate) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	status := stringArgDefault(args, "status", "success")
	return Okf("The interaction has been completed with status: %s", status), nil
}
