package response

import (
	"fmt"

	"neuroscan/internal/app/domains/entity/etpatient"
)

// FromPatientEntity 从领域对象转换为响应 DTO
func FromPatientEntity(record *etpatient.Record) *PatientResponse {
	resp := &PatientResponse{
		ID:              record.ID,
		RecordNo:        record.RecordNo,
		Name:            record.Name,
		Age:             record.Age,
		Gender:          record.Gender,
		Outcome:         string(record.Outcome),
		Result:          record.Result,
		Confidence:      record.Confidence,
		Images:          make([]*ImageResponse, 0, len(record.Images)),
		ThumbnailStatus: string(record.ThumbnailStatus),
		Date:            record.Date(),
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}

	for _, img := range record.Images {
		item := &ImageResponse{
			Position: img.Position,
			Filename: img.Filename,
		}
		if img.ThumbnailPath != "" {
			item.ThumbnailURL = ThumbnailURL(record.ID, img.Position)
		}
		resp.Images = append(resp.Images, item)
	}

	return resp
}

// FromPatientEntities 批量转换
func FromPatientEntities(records []*etpatient.Record, total int64, page, limit int) *PatientListResponse {
	items := make([]*PatientResponse, 0, len(records))
	for _, r := range records {
		items = append(items, FromPatientEntity(r))
	}
	return &PatientListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}

// ThumbnailURL 缩略图访问地址
func ThumbnailURL(patientID, position string) string {
	return fmt.Sprintf("/patient/%s/thumbnails/%s", patientID, position)
}
