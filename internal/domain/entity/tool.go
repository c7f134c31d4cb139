package entity

type ToolName string

const (
	ToolNavigate   ToolName = "navigate"
	ToolClick      ToolName = "click_element"
	ToolInputText  ToolName = "input_text"
	ToolScroll     ToolName = "scroll"
	ToolPressEnter ToolName = "press_enter"
	ToolScreenshot ToolName = "screenshot"
	ToolExtract    ToolName = "extract_text"
)

func (t ToolName) String() string {
	return string(t)
}

type ToolCall struct {
	ID        string
	Name      ToolName
	Arguments string
}

type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]interface{}
}
