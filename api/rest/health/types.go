package health

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

type DBResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}
