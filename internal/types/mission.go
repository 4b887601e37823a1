package types

type MissionUIConfig struct {
  InputPlaceholder string `json:"inputPlaceholder"`
  Icon             string `json:"icon"`
}

// Mission definitions are static and code-defined; they are not read from the
// document store.
type Mission struct {
  MissionID    string          `json:"missionId"`
  Title        string          `json:"title"`
  Description  string          `json:"description"`
  PromptSystem string          `json:"promptSystem"`
  UIConfig     MissionUIConfig `json:"uiConfig"`
}
