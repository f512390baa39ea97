// Package app implements the application layer for nanoindent.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"go.trai.ch/nanoindent/internal/adapters/transport" //nolint:depguard // Wired in app layer
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/nanoindent/internal/registry"
	"go.trai.ch/zerr"
)

// App drives the pipeline for the command line and the server.
type App struct {
	pipeline ports.Pipeline
	registry *registry.Registry
	server   *transport.Server
	cache    ports.CacheStore
	logger   ports.Logger
	addr     string
	closers  []closer
}

// closer releases one resource on Close.
type closer struct {
	name string
	fn   func(context.Context) error
}

// New creates a new App instance.
func New(
	p ports.Pipeline,
	reg *registry.Registry,
	server *transport.Server,
	cache ports.CacheStore,
	logger ports.Logger,
) *App {
	a := &App{
		pipeline: p,
		registry: reg,
		server:   server,
		cache:    cache,
		logger:   logger,
		addr:     domain.DefaultSettings().Server.Addr,
	}
	if cache != nil {
		a.closers = append(a.closers, closer{name: "close cache", fn: func(context.Context) error {
			return cache.Close()
		}})
	}
	return a
}

// WithAddr sets the default listen address of Serve.
func (a *App) WithAddr(addr string) *App {
	a.addr = addr
	return a
}

// WithShutdown registers a telemetry flush hook run by Close.
func (a *App) WithShutdown(fn func(context.Context) error) *App {
	a.closers = append(a.closers, closer{name: "shutdown telemetry", fn: fn})
	return a
}

// WithProgress registers the progress recorder closed by Close.
func (a *App) WithProgress(t ports.Telemetry) *App {
	a.closers = append(a.closers, closer{name: "close progress", fn: func(context.Context) error {
		return t.Close()
	}})
	return a
}

// Process runs one request and writes the response to w as JSON.
func (a *App) Process(ctx context.Context, req *domain.Request, w io.Writer) error {
	resp, err := a.pipeline.Process(ctx, req)
	if err != nil {
		return zerr.Wrap(err, "process failed")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Scan fits elastic models over every stored curve and writes one JSON line per chunk to w.
func (a *App) Scan(ctx context.Context, req *domain.ScanRequest, w io.Writer) error {
	enc := json.NewEncoder(w)
	err := a.pipeline.Scan(ctx, req, func(chunk domain.ScanChunk) error {
		a.logger.Info("scan progress",
			"batch", chunk.Progress.BatchIndex+1,
			"batches", chunk.Progress.TotalBatches,
			"fraction", chunk.Progress.Fraction(),
		)
		return enc.Encode(chunk)
	})
	if err != nil {
		return zerr.Wrap(err, "scan failed")
	}
	return nil
}

// Algorithms writes the registered algorithms as a table. An empty family lists all of them.
func (a *App) Algorithms(w io.Writer, family string) error {
	if family != "" && !slices.Contains(domain.Families(), domain.Family(family)) {
		return zerr.With(zerr.Wrap(domain.ErrUnknownFamily, "list algorithms"), "family", family)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FAMILY\tNAME\tPARAMETERS\tDESCRIPTION")
	for _, info := range a.registry.Catalog() {
		if family != "" && string(info.Family) != family {
			continue
		}
		params := make([]string, len(info.Params))
		for i, p := range info.Params {
			params[i] = fmt.Sprintf("%s=%g", p.Name, p.Default)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Family, info.Name, strings.Join(params, ","), info.Description)
	}
	return tw.Flush()
}

// Serve runs the HTTP and websocket server until ctx is cancelled. An empty addr uses the
// configured one.
func (a *App) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.addr
	}
	return a.server.Run(ctx, addr)
}

// Close releases resources in registration order, the cache first.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			errs = append(errs, zerr.Wrap(err, c.name))
		}
	}
	return errors.Join(errs...)
}
