package models

// DeliveryTask describes one rendered artifact to upload. A task lives for
// a single run: attempted up to MaxAttempts, then abandoned.
type DeliveryTask struct {
	ArtifactPath string `json:"artifact_path"`
	Filename     string `json:"filename"`
	Caption      string `json:"caption"`
	Attempts     int    `json:"attempts"`
	MaxAttempts  int    `json:"max_attempts"`
}

// Poll is one interactive quiz message: question, ordered options, the
// resolved zero-based correct option index and an explanation. Fields are
// already truncated to destination limits when the poll is built.
type Poll struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
}
