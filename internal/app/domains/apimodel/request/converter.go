package request

import "neuroscan/internal/app/domains/entity/etpatient"

// ToPatientEntity 将 Request DTO 转换为领域对象
func (r *AnalyzeRequest) ToPatientEntity() etpatient.Patient {
	return etpatient.Patient{
		Name:   r.PatientName,
		Age:    r.Age,
		Gender: r.Gender,
	}
}
