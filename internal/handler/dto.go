package handler

import "pitchgraph/internal/model"

type GenerateRequest struct {
	StartupText    string `json:"startup_text"`
	CompanyName    string `json:"company_name"`
	DestinationGCS string `json:"destination_gcs"`
}

type GenerateResponse struct {
	KnowledgeGraph *model.KnowledgeGraph `json:"knowledge_graph"`
	GCSWriteError  string                `json:"gcs_write_error,omitempty"`
}
