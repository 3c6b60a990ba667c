package repair

// ===============================
// Repair Order Status
// ===============================

type Status string

const (
	StatusQuoted    Status = "Cotización"
	StatusInRepair  Status = "Reparación"
	StatusInTesting Status = "Prueba"
	StatusDelivered Status = "Entregado"
)

// ordinals define the workshop progression; list views sort by this,
// not by the label text.
var ordinals = map[Status]int{
	StatusQuoted:    0,
	StatusInRepair:  1,
	StatusInTesting: 2,
	StatusDelivered: 3,
}

func (s Status) Valid() bool {
	_, ok := ordinals[s]
	return ok
}

func (s Status) Ordinal() int {
	if o, ok := ordinals[s]; ok {
		return o
	}
	return len(ordinals)
}

func InitialStatus() Status {
	return StatusQuoted
}
