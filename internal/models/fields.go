package models

// Job fields a resume can target. Queues and models are scoped per field and
// never shared across fields.
const (
	FieldSoftware   = "software"
	FieldData       = "data"
	FieldFinance    = "finance"
	FieldConsulting = "consulting"
	FieldMarketing  = "marketing"
	FieldProduct    = "product"
	FieldGeneral    = "general"
)

// JobFields lists every valid field with its display name, in menu order.
var JobFields = []struct {
	ID   string
	Name string
}{
	{FieldSoftware, "Software / Engineering"},
	{FieldData, "Data / Analytics"},
	{FieldFinance, "Finance"},
	{FieldConsulting, "Consulting"},
	{FieldMarketing, "Marketing"},
	{FieldProduct, "Product Management"},
	{FieldGeneral, "General / Other"},
}

func ValidJobField(field string) bool {
	for _, f := range JobFields {
		if f.ID == field {
			return true
		}
	}
	return false
}
