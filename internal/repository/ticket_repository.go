package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// TicketRepository reads the slice of the ticket store the monitor needs.
// The tickets table is owned by the ticket service; this repository never
// writes to it.
type TicketRepository interface {
	ListActiveWithDeadline(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

// ListActiveWithDeadline returns every ticket still eligible for SLA
// evaluation, earliest deadline first. The ordering fixes the notification
// emission order within a pass.
func (r *ticketRepository) ListActiveWithDeadline(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, requester_user_id, assignee_staff_id, status, priority, created_at, sla_target
        FROM tickets
        WHERE status NOT IN ($1, $2) AND sla_target IS NOT NULL
        ORDER BY sla_target ASC`

	rows, err := r.pool.Query(ctx, query, domain.TicketStatusResolved, domain.TicketStatusClosed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.ReporterID,
			&ticket.AssigneeID,
			&ticket.Status,
			&ticket.Priority,
			&ticket.CreatedAt,
			&ticket.SLATarget,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
