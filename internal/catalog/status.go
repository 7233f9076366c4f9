package catalog

// Status says which option axes a product's variants use.
type Status string

const (
	StatusNone  Status = "none"
	StatusSize  Status = "size"
	StatusColor Status = "color"
	StatusBoth  Status = "both"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNone, StatusSize, StatusColor, StatusBoth:
		return true
	}
	return false
}
