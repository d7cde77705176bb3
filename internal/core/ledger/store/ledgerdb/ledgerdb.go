// Package ledgerdb contains transaction related CRUD functionality.
package ledgerdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rschio/otica/internal/core/ledger"
	db "github.com/rschio/otica/internal/data/dbsql/pgx"
)

type Store struct {
	log *slog.Logger
	db  db.DB
}

func NewStore(log *slog.Logger, database db.DB) *Store {
	return &Store{
		log: log,
		db:  database,
	}
}

func (s *Store) Create(ctx context.Context, t ledger.Transaction) error {
	const q = `
	INSERT INTO transactions
		(id, tipo, categoria, descricao, valor, data, cliente_nome, cliente_id, observacoes, created_at)
	VALUES
		(@id, @tipo, @categoria, @descricao, @valor, @data, @cliente_nome, @cliente_id, @observacoes, @created_at)`

	dbt, err := toDBTransaction(t)
	if err != nil {
		return err
	}

	return db.NamedExec(ctx, s.log, s.db, q, dbt)
}

func (s *Store) Query(ctx context.Context, filter ledger.QueryFilter, skip, limit int) ([]ledger.Transaction, error) {
	data := struct {
		DateStart  string `db:"data_inicio"`
		DateEnd    string `db:"data_fim"`
		ClientName string `db:"cliente_nome"`
		Skip       int    `db:"skip"`
		Limit      int    `db:"lim"`
	}{
		DateStart:  filter.DateStart,
		DateEnd:    filter.DateEnd,
		ClientName: filter.ClientName,
		Skip:       skip,
		Limit:      limit,
	}

	var where []string
	if filter.DateStart != "" {
		where = append(where, "data >= @data_inicio::date")
	}
	if filter.DateEnd != "" {
		where = append(where, "data <= @data_fim::date")
	}
	if filter.ClientName != "" {
		where = append(where, "cliente_nome ILIKE '%' || @cliente_nome || '%'")
	}

	q := `
	SELECT
		id, tipo, categoria, descricao, valor, data, cliente_nome, cliente_id, observacoes, created_at
	FROM
		transactions`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY data DESC, created_at DESC OFFSET @skip LIMIT @lim"

	ts, err := db.NamedQuerySlice[dbTransaction](ctx, s.log, s.db, q, data)
	if err != nil {
		return nil, err
	}

	return toTransactions(ts), nil
}

func (s *Store) QueryAll(ctx context.Context) ([]ledger.Transaction, error) {
	const q = `
	SELECT
		id, tipo, categoria, descricao, valor, data, cliente_nome, cliente_id, observacoes, created_at
	FROM
		transactions
	ORDER BY
		data DESC, created_at DESC`

	ts, err := db.NamedQuerySlice[dbTransaction](ctx, s.log, s.db, q, struct{}{})
	if err != nil {
		return nil, err
	}

	return toTransactions(ts), nil
}

func (s *Store) QueryByID(ctx context.Context, id string) (ledger.Transaction, error) {
	data := struct {
		ID string `db:"id"`
	}{
		ID: id,
	}

	const q = `
	SELECT
		id, tipo, categoria, descricao, valor, data, cliente_nome, cliente_id, observacoes, created_at
	FROM
		transactions
	WHERE
		id = @id`

	t, err := db.NamedQueryStruct[dbTransaction](ctx, s.log, s.db, q, data)
	if err != nil {
		if errors.Is(err, db.ErrDBNotFound) {
			return ledger.Transaction{}, ledger.ErrNotFound
		}
		return ledger.Transaction{}, err
	}

	return toTransaction(t), nil
}

func (s *Store) Update(ctx context.Context, t ledger.Transaction) error {
	const q = `
	UPDATE transactions SET
		tipo = @tipo,
		categoria = @categoria,
		descricao = @descricao,
		valor = @valor,
		data = @data,
		cliente_nome = @cliente_nome,
		cliente_id = @cliente_id,
		observacoes = @observacoes
	WHERE
		id = @id`

	dbt, err := toDBTransaction(t)
	if err != nil {
		return err
	}

	n, err := db.NamedExecCount(ctx, s.log, s.db, q, dbt)
	if err != nil {
		return err
	}
	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	data := struct {
		ID string `db:"id"`
	}{
		ID: id,
	}

	const q = `
	DELETE FROM transactions WHERE id = @id`

	n, err := db.NamedExecCount(ctx, s.log, s.db, q, data)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
