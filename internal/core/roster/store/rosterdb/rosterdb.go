// Package rosterdb contains client related CRUD functionality.
package rosterdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rschio/otica/internal/core/roster"
	db "github.com/rschio/otica/internal/data/dbsql/pgx"
)

const selectColumns = `
	id, nome, email, telefone, endereco, status, valor_devido,
	data_ultimo_pagamento, estado_civil, numero_filhos, escolaridade,
	tem_cartao_credito, renda_bruta, idade, frequencia_compra,
	quantidade_compras, tipo_compra, origem_cliente, observacoes, created_at`

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

func (s *Store) Create(ctx context.Context, c roster.Client) error {
	const q = `
	INSERT INTO clients
		(id, nome, email, telefone, endereco, status, valor_devido,
		data_ultimo_pagamento, estado_civil, numero_filhos, escolaridade,
		tem_cartao_credito, renda_bruta, idade, frequencia_compra,
		quantidade_compras, tipo_compra, origem_cliente, observacoes, created_at)
	VALUES
		(@id, @nome, @email, @telefone, @endereco, @status, @valor_devido,
		@data_ultimo_pagamento, @estado_civil, @numero_filhos, @escolaridade,
		@tem_cartao_credito, @renda_bruta, @idade, @frequencia_compra,
		@quantidade_compras, @tipo_compra, @origem_cliente, @observacoes, @created_at)`

	dbc, err := toDBClient(c)
	if err != nil {
		return err
	}

	return db.NamedExec(ctx, s.log, s.db, q, dbc)
}

func (s *Store) Query(ctx context.Context, status string, skip, limit int) ([]roster.Client, error) {
	data := struct {
		Status string `db:"status"`
		Skip   int    `db:"skip"`
		Limit  int    `db:"lim"`
	}{
		Status: status,
		Skip:   skip,
		Limit:  limit,
	}

	q := `SELECT` + selectColumns + ` FROM clients`
	if status != "" {
		q += ` WHERE status = @status`
	}
	q += ` ORDER BY nome ASC OFFSET @skip LIMIT @lim`

	cs, err := db.NamedQuerySlice[dbClient](ctx, s.log, s.db, q, data)
	if err != nil {
		return nil, err
	}

	return toClients(cs), nil
}

func (s *Store) QueryAll(ctx context.Context) ([]roster.Client, error) {
	const q = `SELECT` + selectColumns + ` FROM clients ORDER BY nome ASC`

	cs, err := db.NamedQuerySlice[dbClient](ctx, s.log, s.db, q, struct{}{})
	if err != nil {
		return nil, err
	}

	return toClients(cs), nil
}

func (s *Store) QueryByID(ctx context.Context, id string) (roster.Client, error) {
	data := struct {
		ID string `db:"id"`
	}{
		ID: id,
	}

	const q = `SELECT` + selectColumns + ` FROM clients WHERE id = @id`

	c, err := db.NamedQueryStruct[dbClient](ctx, s.log, s.db, q, data)
	if err != nil {
		if errors.Is(err, db.ErrDBNotFound) {
			return roster.Client{}, roster.ErrNotFound
		}
		return roster.Client{}, err
	}

	return toClient(c), nil
}

func (s *Store) Update(ctx context.Context, c roster.Client) error {
	const q = `
	UPDATE clients SET
		nome = @nome,
		email = @email,
		telefone = @telefone,
		endereco = @endereco,
		status = @status,
		valor_devido = @valor_devido,
		data_ultimo_pagamento = @data_ultimo_pagamento,
		estado_civil = @estado_civil,
		numero_filhos = @numero_filhos,
		escolaridade = @escolaridade,
		tem_cartao_credito = @tem_cartao_credito,
		renda_bruta = @renda_bruta,
		idade = @idade,
		frequencia_compra = @frequencia_compra,
		quantidade_compras = @quantidade_compras,
		tipo_compra = @tipo_compra,
		origem_cliente = @origem_cliente,
		observacoes = @observacoes
	WHERE
		id = @id`

	dbc, err := toDBClient(c)
	if err != nil {
		return err
	}

	n, err := db.NamedExecCount(ctx, s.log, s.db, q, dbc)
	if err != nil {
		return err
	}
	if n == 0 {
		return roster.ErrNotFound
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
	DELETE FROM clients WHERE id = @id`

	n, err := db.NamedExecCount(ctx, s.log, s.db, q, data)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if n == 0 {
		return roster.ErrNotFound
	}

	return nil
}
