package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/notifier/repo"
	ev "github.com/fvelazquezb100/betadona/pkg/contracts/events"
)

// Store persiste notificações de liquidação
type Store interface {
	Insert(ctx context.Context, n repo.Notification) error
}

// DLQ recebe mensagens que não puderam ser processadas
type DLQ interface {
	Send(ctx context.Context, key string, value []byte) error
}

// Processor consome eventos bet_settled e gera notificações para os usuários
// Mensagens malformadas vão para a DLQ (se configurada) e não bloqueiam o consumo
type Processor struct {
	Log   *zap.Logger
	Store Store
	DLQ   DLQ // opcional

	// Callbacks para métricas
	OnConsumed func()
	OnError    func(stage string)
}

// ProcessMessage trata uma única mensagem do tópico bet_settled
func (p *Processor) ProcessMessage(ctx context.Context, key, value []byte) error {
	var settled ev.BetSettled
	if err := json.Unmarshal(value, &settled); err != nil {
		if p.OnError != nil {
			p.OnError("unmarshal")
		}
		p.Log.Error("unmarshal bet_settled", zap.Error(err))
		if p.DLQ != nil {
			_ = p.DLQ.Send(ctx, string(key), value)
		}
		return nil // mensagem inválida não é retryável
	}

	n := repo.Notification{
		BetID:       settled.BetID,
		UserID:      settled.UserID,
		Status:      settled.Status,
		PayoutCents: settled.PayoutCents,
		Message:     buildMessage(settled),
	}
	if err := p.Store.Insert(ctx, n); err != nil {
		if p.OnError != nil {
			p.OnError("insert")
		}
		return err
	}
	if p.OnConsumed != nil {
		p.OnConsumed()
	}
	p.Log.Info("notification stored",
		zap.String("betId", settled.BetID),
		zap.String("status", settled.Status),
	)
	return nil
}

// buildMessage monta o texto exibido ao usuário
func buildMessage(s ev.BetSettled) string {
	if s.Status == "won" {
		return fmt.Sprintf("Tu apuesta en %s ha ganado: +%.2f €", s.Fixture, float64(s.PayoutCents)/100)
	}
	return fmt.Sprintf("Tu apuesta en %s ha perdido: %.2f €", s.Fixture, float64(s.PayoutCents)/100)
}
