package grpc

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/api"
	"github.com/dmitrijs2005/passkeeper/internal/generator"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/dmitrijs2005/passkeeper/internal/server/services"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {

	sess, err := s.accounts.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "account_id", sess.AccountID)
	return toAuthResponse(sess), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {

	sess, err := s.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAuthResponse(sess), nil
}

func (s *GRPCServer) CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (*api.Record, error) {

	meta, err := s.records.Add(ctx, userIDFromContext(ctx), services.NewRecord{
		Site:      req.Site,
		Username:  req.Username,
		Password:  req.Password,
		MasterKey: req.MasterKey,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toRecord(meta), nil
}

func (s *GRPCServer) ListRecords(ctx context.Context, _ *api.ListRecordsRequest) (*api.ListRecordsResponse, error) {

	list, err := s.records.List(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListRecordsResponse{Records: make([]api.Record, 0, len(list))}
	for i := range list {
		resp.Records = append(resp.Records, *toRecord(&list[i]))
	}
	return resp, nil
}

func (s *GRPCServer) RevealRecord(ctx context.Context, req *api.RevealRecordRequest) (*api.RevealRecordResponse, error) {

	rec, err := s.records.Reveal(ctx, userIDFromContext(ctx), req.ID, req.MasterKey)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RevealRecordResponse{
		ID:       rec.ID,
		Site:     rec.Site,
		Username: rec.Username,
		Password: rec.Password,
	}, nil
}

func (s *GRPCServer) UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.Record, error) {

	meta, err := s.records.Update(ctx, userIDFromContext(ctx), req.ID, services.RecordUpdate{
		Site:      req.Site,
		Username:  req.Username,
		Password:  req.Password,
		MasterKey: req.MasterKey,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toRecord(meta), nil
}

func (s *GRPCServer) DeleteRecord(ctx context.Context, req *api.DeleteRecordRequest) (*api.DeleteRecordResponse, error) {

	if err := s.records.Delete(ctx, userIDFromContext(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.DeleteRecordResponse{}, nil
}

func (s *GRPCServer) GeneratePassword(ctx context.Context, req *api.GeneratePasswordRequest) (*api.GeneratePasswordResponse, error) {

	pw, err := generator.Generate(req.Length)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.GeneratePasswordResponse{Password: pw}, nil
}

func (s *GRPCServer) ExportRecords(ctx context.Context, _ *api.ExportRecordsRequest) (*api.ExportRecordsResponse, error) {

	res, err := s.exports.Export(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ExportRecordsResponse{
		Key:       res.Key,
		URL:       res.URL,
		ExpiresAt: res.ExpiresAt,
		Records:   res.Records,
	}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func toAuthResponse(sess *services.Session) *api.AuthResponse {
	return &api.AuthResponse{
		Token:   sess.Token,
		Account: api.Account{ID: sess.AccountID, Email: sess.Email},
	}
}

func toRecord(m *models.RecordMeta) *api.Record {
	return &api.Record{
		ID:        m.ID,
		Site:      m.Site,
		Username:  m.Username,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
