// Command reql-cli is a smoke-test client exercising the driver
// end-to-end: it pools connections across the configured endpoints,
// inserts a batch of documents concurrently, then reads them back by
// primary key - grounded on teacher's rethinkdb_test.go, which drives the
// same insert/get round trip against a live server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rethinkdb-go/rethinkdriver/internal/config"
	"github.com/rethinkdb-go/rethinkdriver/reql"
	"github.com/rethinkdb-go/rethinkdriver/reql/cursor"
	"github.com/rethinkdb-go/rethinkdriver/reql/rqpool"
	"github.com/rethinkdb-go/rethinkdriver/reql/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "reql-cli:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	if len(cfg.Endpoints) == 0 {
		cfg.Endpoints = []string{"127.0.0.1:28015"}
	}

	pool, err := rqpool.New(cfg.Endpoints, cfg.PoolOptions())
	if err != nil {
		return err
	}

	db := reql.DbOf(reql.Str("reql_cli"))
	table := reql.TableOf(db, reql.Str("smoke"))

	ids := make([]string, 8)
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	ctx := context.Background()
	group, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		group.Go(func() error {
			return insertOne(gctx, pool, table, id)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, id := range ids {
		doc, err := fetchOne(ctx, pool, table, id)
		if err != nil {
			return err
		}
		fmt.Println(string(doc))
	}
	return nil
}

func insertOne(ctx context.Context, pool *rqpool.Pool, table reql.Expr[reql.Table], id string) error {
	conn, err := pool.Acquire(ctx, reql.NullVal())
	if err != nil {
		return err
	}
	defer conn.Release()

	doc := reql.Obj(map[string]reql.Expr[reql.Any]{
		"id":   reql.AnyOf(reql.Str(id)),
		"seen": reql.AnyOf(reql.Now()),
	})
	q := reql.Insert(table, doc, reql.WriteOptions{})
	cur, err := cursor.Run(conn.Connection, q, reql.GlobalOptions{ReadMode: reql.ReadModeMajority})
	if err != nil {
		conn.MarkBroken()
		return err
	}
	defer cur.Close()

	_, err = cur.Next(wire.WaitYes())
	if err != nil {
		conn.MarkBroken()
		return err
	}
	return nil
}

func fetchOne(ctx context.Context, pool *rqpool.Pool, table reql.Expr[reql.Table], id string) (json.RawMessage, error) {
	conn, err := pool.Acquire(ctx, reql.NullVal())
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	q := reql.Get(table, reql.Str(id))
	cur, err := cursor.Run(conn.Connection, q, reql.GlobalOptions{})
	if err != nil {
		conn.MarkBroken()
		return nil, err
	}
	defer cur.Close()

	batch, err := cur.Next(wire.WaitYes())
	if err != nil {
		conn.MarkBroken()
		return nil, err
	}
	if batch == nil || len(batch.Values) == 0 {
		return nil, fmt.Errorf("no document for id %s", id)
	}
	return batch.Values[0], nil
}
