// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Server exposes orders, earnings and the member graph over HTTP.
type Server struct {
	*httprouter.Router

	log *logging.Logger
	cfg Config
	s   *http.Server

	orders   OrderService
	earnings EarningsEngine
	members  MemberRegistry
	trees    TreeBuilder
	ledger   Ledger
}

func New(
	log *logging.Logger,
	cfg Config,
	orders OrderService,
	earnings EarningsEngine,
	members MemberRegistry,
	trees TreeBuilder,
	ledger Ledger,
) *Server {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	s := &Server{
		Router:   httprouter.New(),
		log:      log,
		cfg:      cfg,
		orders:   orders,
		earnings: earnings,
		members:  members,
		trees:    trees,
		ledger:   ledger,
	}

	s.POST("/api/v1/orders", s.observe("SubmitOrder", s.SubmitOrder))
	s.GET("/api/v1/orders/:id", s.observe("GetOrder", s.GetOrder))
	s.POST("/api/v1/orders/:id/earnings", s.observe("GenerateEarnings", s.GenerateEarnings))
	s.GET("/api/v1/orders/:id/earnings", s.observe("OrderEarnings", s.OrderEarnings))

	s.POST("/api/v1/members", s.observe("RegisterMember", s.RegisterMember))
	s.GET("/api/v1/members/:code", s.observe("GetMember", s.GetMember))
	s.GET("/api/v1/members/:code/tree", s.observe("MemberTree", s.MemberTree))
	s.GET("/api/v1/members/:code/binary-tree", s.observe("MemberBinaryTree", s.MemberBinaryTree))
	s.GET("/api/v1/members/:code/earnings", s.observe("MemberEarnings", s.MemberEarnings))
	s.PUT("/api/v1/members/:code/placement", s.observe("SetPlacement", s.SetPlacement))
	s.PUT("/api/v1/members/:code/active", s.observe("SetActive", s.SetActive))

	return s
}

// observe records the call count and duration of a handler.
func (s *Server) observe(name string, h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		defer func() {
			metrics.APIRequestAndTimeREST(name, time.Since(start).Seconds())
		}()
		h(w, r, ps)
	}
}

// fail writes err with the status of its kind. Internal errors are logged
// and their detail kept out of the response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Error(err),
		)
		writeError(w, newError("internal error"), status)
		return
	}
	writeError(w, err, status)
}

func (s *Server) Start() error {
	s.s = &http.Server{
		Addr:         fmt.Sprintf("%s:%v", s.cfg.IP, s.cfg.Port),
		Handler:      cors.New(CORSOptions(s.cfg.CORS)).Handler(s),
		ReadTimeout:  s.cfg.Timeout.Get(),
		WriteTimeout: s.cfg.Timeout.Get(),
	}

	s.log.Info("starting rest api", logging.String("address", s.s.Addr))
	if err := s.s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.s == nil {
		return nil
	}
	s.log.Info("stopping rest api")
	return s.s.Shutdown(ctx)
}
