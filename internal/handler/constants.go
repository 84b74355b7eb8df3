package handler

// Log messages for request handling
const (
	LogMsgRejectedArtifact = "Rejected artifact description"
	LogMsgEvaluationFailed = "Evaluation failed"
)
