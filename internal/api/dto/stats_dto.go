package dto

// DashboardResponse carries the dashboard counters. The two "meus" keys
// are scoped to the requesting user: tickets they opened for requesters,
// open plus assigned tickets for technicians.
type DashboardResponse struct {
	Total       int64 `json:"total_chamados"`
	Open        int64 `json:"chamados_abertos"`
	InProgress  int64 `json:"chamados_em_atendimento"`
	Closed      int64 `json:"chamados_encerrados"`
	Urgent      int64 `json:"chamados_urgentes"`
	Mine        int64 `json:"meus_chamados"`
	PendingMine int64 `json:"meus_chamados_pendentes"`
}
