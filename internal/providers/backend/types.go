package backend

type paceEntry struct {
	DriverCode string `json:"driver_code"`
	Positions  []int  `json:"positions"`
}

type paceResponse struct {
	Pace []paceEntry `json:"pace"`
}
