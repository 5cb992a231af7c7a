package events

import "time"

// Evento emitido pelo settlement-job para cada aposta liquidada.
type BetSettled struct {
	BetID       string    `json:"betId"`
	UserID      string    `json:"userId"`
	Status      string    `json:"status"` // "won" | "lost"
	PayoutCents int64     `json:"payoutCents"`
	Fixture     string    `json:"fixture"` // ex: "Real Madrid 2-1 Barcelona"
	Ts          time.Time `json:"ts"`
}
