package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
)

type agentsRepo struct {
	db dbtx
}

const agentColumns = `id, owner_id, is_property_dealer, agent_name, firm_name, operating_city,
	operating_area_chips, operating_since, team_members, deals_in, deals_in_other, about_agent,
	created_at, updated_at`

func scanAgent(row scanner) (domain.Agent, error) {
	var (
		a            domain.Agent
		owner        sql.NullString
		areas, deals string
	)
	err := row.Scan(&a.ID, &owner, &a.IsPropertyDealer, &a.AgentName, &a.FirmName, &a.OperatingCity,
		&areas, &a.OperatingSince, &a.TeamMembers, &deals, &a.DealsInOther, &a.AboutAgent,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Agent{}, err
	}
	a.Owner = mapNullString(owner)
	a.OperatingAreaChips = decodeList[string](areas)
	a.DealsIn = decodeList[string](deals)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *agentsRepo) CreateAgent(ctx context.Context, a domain.Agent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO agents (`+agentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, mapStringNull(a.Owner), a.IsPropertyDealer, a.AgentName, a.FirmName, a.OperatingCity,
		encodeList(a.OperatingAreaChips), a.OperatingSince, a.TeamMembers, encodeList(a.DealsIn),
		a.DealsInOther, a.AboutAgent, a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapUnique(err)
}

func (r *agentsRepo) GetAgent(ctx context.Context, id string) (domain.Agent, error) {
	a, err := scanAgent(r.db.QueryRowContext(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE id = ?`, id))
	return a, mapNotFound(err)
}

func (r *agentsRepo) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+agentColumns+` FROM agents ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Agent{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *agentsRepo) UpdateAgent(ctx context.Context, a domain.Agent) error {
	return requireOne(r.db.ExecContext(ctx, `
		UPDATE agents SET
			is_property_dealer = ?, agent_name = ?, firm_name = ?, operating_city = ?,
			operating_area_chips = ?, operating_since = ?, team_members = ?, deals_in = ?,
			deals_in_other = ?, about_agent = ?, updated_at = ?
		WHERE id = ?`,
		a.IsPropertyDealer, a.AgentName, a.FirmName, a.OperatingCity,
		encodeList(a.OperatingAreaChips), a.OperatingSince, a.TeamMembers, encodeList(a.DealsIn),
		a.DealsInOther, a.AboutAgent, a.UpdatedAt.UTC(), a.ID,
	))
}

func (r *agentsRepo) DeleteAgent(ctx context.Context, id string) error {
	return requireOne(r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id))
}
