package handler

// Request/response types for the legacy inspection endpoints. Field names
// follow the contract the mobile client already speaks, so they stay in
// Portuguese and the per-field 400 messages are checked explicitly in the
// handlers rather than through the validator.

type fiscalSpotRequest struct {
	CPF     string `json:"cpf"`
	NomeRua string `json:"nomeRua"`
}

type checkParkingStateRequest struct {
	CPF          string `json:"cpf"`
	PlacaDoCarro string `json:"placaDoCarro"`
	NomeRua      string `json:"nomeRua"`
}

type spotResponse struct {
	IDVaga       int64   `json:"IDVaga"`
	HoraEntrada  string  `json:"horaEntrada"`
	HoraSaida    *string `json:"horaSaida"`
	PlacaDoCarro string  `json:"placaDoCarro"`
}

type parkingStateResponse struct {
	Message string        `json:"message"`
	Vaga    *spotResponse `json:"vaga,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
