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
	"net/http"
	"strconv"

	"code.bundlemart.io/earnings/earnings"
	"code.bundlemart.io/earnings/orders"
	"code.bundlemart.io/earnings/referral"
	"code.bundlemart.io/earnings/tree"
	"code.bundlemart.io/earnings/types"

	"github.com/julienschmidt/httprouter"
)

type GenerateEarningsResponse struct {
	Records          []types.EarningRecord `json:"records"`
	AlreadyGenerated bool                  `json:"already_generated"`
}

type RegisterMemberRequest struct {
	ParentCode string `json:"parent_code"`
	Name       string `json:"name"`
	Series     string `json:"series"`
}

type SetPlacementRequest struct {
	Side types.PlacementSide `json:"side"`
}

type SetActiveRequest struct {
	Active *bool `json:"active"`
}

func (s *Server) SubmitOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := orders.Submission{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	receipt, err := s.orders.Submit(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, receipt, http.StatusCreated)
}

func (s *Server) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, err := s.orders.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, order, http.StatusOK)
}

// GenerateEarnings is the manual trigger, answering 200 with
// already_generated set when the order was credited before.
func (s *Server) GenerateEarnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := s.earnings.GenerateForOrder(r.Context(), ps.ByName("id"), earnings.Options{})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	records := res.Records
	if records == nil {
		records = []types.EarningRecord{}
	}
	writeSuccess(w, GenerateEarningsResponse{
		Records:          records,
		AlreadyGenerated: res.AlreadyGenerated,
	}, http.StatusOK)
}

func (s *Server) OrderEarnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recs, err := s.ledger.ListByOrder(r.Context(), ps.ByName("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, recs, http.StatusOK)
}

func (s *Server) RegisterMember(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := RegisterMemberRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	m, err := s.members.Register(r.Context(), referral.Registration{
		ParentCode: req.ParentCode,
		Name:       req.Name,
		Series:     req.Series,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, m, http.StatusCreated)
}

func (s *Server) GetMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, err := s.members.Get(r.Context(), ps.ByName("code"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, m, http.StatusOK)
}

func (s *Server) MemberTree(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	depth, err := depthParam(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	strategy, err := tree.ParseStrategy(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	node, err := s.trees.Build(r.Context(), ps.ByName("code"), depth, strategy)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, node, http.StatusOK)
}

func (s *Server) MemberBinaryTree(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	depth, err := depthParam(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	node, err := s.trees.Binary(r.Context(), ps.ByName("code"), depth)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, node, http.StatusOK)
}

func (s *Server) MemberEarnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")
	if _, err := s.members.Get(r.Context(), code); err != nil {
		s.fail(w, r, err)
		return
	}
	recs, err := s.ledger.ListByBeneficiary(r.Context(), code)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, recs, http.StatusOK)
}

func (s *Server) SetPlacement(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	req := SetPlacementRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.members.SetPlacement(r.Context(), ps.ByName("code"), req.Side); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) SetActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	req := SetActiveRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if req.Active == nil {
		writeError(w, newError("missing active field"), http.StatusBadRequest)
		return
	}
	if err := s.members.SetActive(r.Context(), ps.ByName("code"), *req.Active); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// depthParam reads the optional depth query parameter, 0 when absent.
func depthParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("depth")
	if len(v) == 0 {
		return 0, nil
	}
	depth, err := strconv.Atoi(v)
	if err != nil || depth < 0 {
		return 0, ErrInvalidDepth
	}
	return depth, nil
}
