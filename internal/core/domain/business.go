package domain

// Business is a read-only snapshot of one registry row from the usaha_llm view.
type Business struct {
	Name           string   `json:"nama_usaha"`
	CommercialName string   `json:"nama_komersial"`
	Address        string   `json:"alamat"`
	Category       string   `json:"kategori"`
	Status         string   `json:"status"`
	Province       string   `json:"provinsi"`
	Regency        string   `json:"kabupaten"`
	District       string   `json:"kecamatan"`
	Village        string   `json:"kelurahan"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// BusinessSummary is the reduced row shape returned by list queries.
type BusinessSummary struct {
	Name     string `json:"nama_usaha"`
	Address  string `json:"alamat"`
	Category string `json:"kategori"`
	Status   string `json:"status"`
}

// CountFilter narrows count and list queries. District and regency are
// mutually exclusive: extraction never sets both (district wins).
type CountFilter struct {
	District string
	Regency  string
	Status   string
}

// IsZero reports whether no filter field is set.
func (f CountFilter) IsZero() bool {
	return f.District == "" && f.Regency == "" && f.Status == ""
}
