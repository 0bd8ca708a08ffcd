package domain

// Address is the structured record produced by the reverse-geocoding
// provider. Any subset of fields may be empty.
type Address struct {
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	Village       string `json:"village"`
	CityDistrict  string `json:"city_district"`
	Town          string `json:"town"`
	City          string `json:"city"`
	County        string `json:"county"`
	State         string `json:"state"`
	Road          string `json:"road"`
	DisplayName   string `json:"display_name"`
}

// Empty reports whether no usable component was returned.
func (a *Address) Empty() bool {
	if a == nil {
		return true
	}
	return a.Neighbourhood == "" && a.Suburb == "" && a.Village == "" &&
		a.CityDistrict == "" && a.Town == "" && a.City == "" &&
		a.County == "" && a.State == "" && a.Road == "" && a.DisplayName == ""
}

// GeocodeDetail is the geocode section echoed back by the generate endpoint.
type GeocodeDetail struct {
	Summary string `json:"ringkas"`
	Road    string `json:"jalan"`
	Full    string `json:"full"`
}
