package main

import (
	"context"
	"errors"

	"github.com/chrisuehlinger/scriptdom/js"
	"github.com/chrisuehlinger/scriptdom/network"
	"github.com/chrisuehlinger/scriptdom/script"
	"go.uber.org/zap"
)

// session is one page loaded into its own compartment.
type session struct {
	rt  *js.Runtime
	win *script.Window
	doc *script.Document
}

// newLoader builds the page loader from the network configuration.
func newLoader() (*network.Loader, error) {
	client, err := network.NewClient(
		network.WithTimeout(cfg.Network.GetTimeout()),
		network.WithUserAgent(cfg.Network.UserAgent),
		network.WithMaxBodySize(cfg.Network.MaxBytes),
		network.WithClientLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return network.NewLoader(client, logger), nil
}

func openSession(ctx context.Context, location string) (*session, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}
	page, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.RuntimeOptions()
	if err != nil {
		return nil, err
	}
	rt := js.NewRuntime(append(opts, js.WithLogger(logger))...)
	win := script.NewWindow(rt)

	doc, err := script.LoadHTML(win, page.Source)
	if err != nil {
		return nil, errors.Join(err, rt.Close())
	}
	logger.Debug("session opened", zap.String("url", page.URL), zap.String("compartment", rt.ID()))
	return &session{rt: rt, win: win, doc: doc}, nil
}

// close tears the document down before destroying the compartment.
func (s *session) close() error {
	s.doc.Teardown()
	s.win.Close()
	return s.rt.Close()
}
