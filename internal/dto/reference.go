package dto

// RefResponse carries one freshly issued reference code.
type RefResponse struct {
	Ref string `json:"ref"`
}
