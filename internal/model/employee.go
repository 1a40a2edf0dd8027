package model

// Employee is reference data, read-only from this client.
// Position: "LA" laundry, "CL" cleaning, "AD" administration.
type Employee struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	DateHired string `json:"date_hired"`
}
