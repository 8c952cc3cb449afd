package maxit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"woyofal/internal/config"
	"woyofal/internal/domain"
	"woyofal/internal/model"

	_ "github.com/lib/pq"
)

const meterSelect = `SELECT c.numero_compteur AS numero, c.actif, c.date_creation,
	cl.nom AS client_nom, cl.prenom AS client_prenom, cl.telephone AS client_telephone,
	cl.adresse AS client_adresse, cl.id AS client_id
FROM compteurs c
LEFT JOIN clients cl ON c.client_id = cl.id`

// DatabaseTransport читает базу Maxit напрямую. Соединение открывается на каждый вызов.
type DatabaseTransport struct {
	open   func(ctx context.Context) (*sql.DB, error)
	target string
}

func NewDatabaseTransport(cfg config.MaxitConfig) *DatabaseTransport {
	dsn := cfg.DatabaseDSN()
	return &DatabaseTransport{
		target: cfg.DBHost + "/" + cfg.DBName,
		open: func(ctx context.Context) (*sql.DB, error) {
			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return nil, err
			}
			db.SetMaxOpenConns(1)
			return db, nil
		},
	}
}

func (t *DatabaseTransport) Name() string { return "database" }

func (t *DatabaseTransport) FetchMeter(ctx context.Context, number string) (model.RawRecord, error) {
	var rec model.RawRecord
	err := t.with(ctx, "fetch", func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, meterSelect+"\nWHERE c.numero_compteur = $1\nLIMIT 1", number)
		if err != nil {
			return err
		}
		defer rows.Close()

		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return err
			}
			return sql.ErrNoRows
		}
		rec, err = scanMeter(rows)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (t *DatabaseTransport) SearchMeters(ctx context.Context, criteria model.SearchCriteria) ([]model.RawRecord, error) {
	query, args := searchQuery(criteria)

	records := []model.RawRecord{}
	err := t.with(ctx, "search", func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanMeter(rows)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (t *DatabaseTransport) Ping(ctx context.Context) (string, error) {
	err := t.with(ctx, "ping", func(db *sql.DB) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		return "", err
	}
	return "database", nil
}

func (t *DatabaseTransport) with(ctx context.Context, op string, fn func(db *sql.DB) error) error {
	db, err := t.open(ctx)
	if err != nil {
		return &TransportError{Op: op, Target: t.target, Err: err}
	}
	defer db.Close()

	if err := fn(db); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return &TransportError{Op: op, Target: t.target, Err: err}
	}
	return nil
}

// searchQuery строит запрос поиска; все заданные фильтры объединяются через AND.
func searchQuery(criteria model.SearchCriteria) (string, []any) {
	c := criteria.Clean()

	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, cond+" = $"+strconv.Itoa(len(args)))
	}
	if c.Number != "" {
		add("c.numero_compteur", c.Number)
	}
	if c.ClientName != "" {
		add("cl.nom", c.ClientName)
	}
	if c.ClientPhone != "" {
		add("cl.telephone", c.ClientPhone)
	}
	if c.Active != nil {
		add("c.actif", *c.Active)
	}

	query := meterSelect
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	return query + "\nORDER BY c.numero_compteur", args
}

// scanMeter читает строку meterSelect; NULL-колонки в запись не попадают.
func scanMeter(rows *sql.Rows) (model.RawRecord, error) {
	var (
		number    string
		active    sql.NullBool
		created   sql.NullTime
		name      sql.NullString
		firstName sql.NullString
		phone     sql.NullString
		addr      sql.NullString
		clientID  sql.NullInt64
	)
	if err := rows.Scan(&number, &active, &created, &name, &firstName, &phone, &addr, &clientID); err != nil {
		return nil, fmt.Errorf("scan meter: %w", err)
	}

	rec := model.RawRecord{"numero": number}
	if active.Valid {
		rec["actif"] = active.Bool
	}
	if created.Valid {
		rec["date_creation"] = created.Time
	}
	if name.Valid {
		rec["client_nom"] = name.String
	}
	if firstName.Valid {
		rec["client_prenom"] = firstName.String
	}
	if phone.Valid {
		rec["client_telephone"] = phone.String
	}
	if addr.Valid {
		rec["client_adresse"] = addr.String
	}
	if clientID.Valid {
		rec["client_id"] = clientID.Int64
	}
	return rec, nil
}
