package docs

import (
	"casevault/internal/dto"
	"casevault/internal/models"
)

func toResponse(doc *models.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:          doc.ID,
		Name:        doc.Name,
		Type:        doc.Type,
		Description: doc.Description,
		Sensitivity: doc.Sensitivity,
		Extension:   doc.Extension,
		SizeBytes:   doc.SizeBytes,
		Checksum:    doc.Checksum,
		CaseID:      doc.CaseID,
		EmployeeID:  doc.EmployeeID,
		FolderID:    doc.FolderID,
		CreatorID:   doc.CreatorID,
		CreatedAt:   doc.CreatedAt,
	}
}
