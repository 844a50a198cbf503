package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	pb "github.com/iWorld-y/founder_radar/app/display/api/founder/v1"
	"github.com/iWorld-y/founder_radar/app/display/internal/usecase"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/attachment"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

type FounderService struct {
	ucUser    *usecase.UserUseCase
	ucInsight *usecase.InsightUseCase
	ucChat    *usecase.ChatUseCase
	log       *log.Helper
}

var _ pb.FounderHTTPServer = (*FounderService)(nil)

func NewFounderService(ucUser *usecase.UserUseCase, ucInsight *usecase.InsightUseCase, ucChat *usecase.ChatUseCase, logger log.Logger) *FounderService {
	return &FounderService{
		ucUser:    ucUser,
		ucInsight: ucInsight,
		ucChat:    ucChat,
		log:       log.NewHelper(logger),
	}
}

func (s *FounderService) Register(ctx context.Context, req *pb.RegisterReq) (*pb.RegisterReply, error) {
	if err := s.ucUser.Register(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}
	return &pb.RegisterReply{Success: true, Message: "success"}, nil
}

func (s *FounderService) Login(ctx context.Context, req *pb.LoginReq) (*pb.LoginReply, error) {
	token, err := s.ucUser.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &pb.LoginReply{Token: token, Username: req.Username}, nil
}

func (s *FounderService) Search(ctx context.Context, req *pb.SearchReq) (*pb.SearchReply, error) {
	res, err := s.ucInsight.Search(ctx, ownerFromContext(ctx), req.Query)
	if err != nil {
		return nil, err
	}
	reply := &pb.SearchReply{
		RequestID: res.RequestID,
		Query:     res.Query,
		Items:     res.Items,
	}
	if res.SchemaErr != nil {
		reply.Warning = res.SchemaErr.Error()
	}
	return reply, nil
}

func (s *FounderService) GetDashboard(ctx context.Context, _ *pb.GetDashboardReq) (*pb.DashboardReply, error) {
	st, err := s.ucInsight.Dashboard(ctx, ownerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return &pb.DashboardReply{State: st}, nil
}

func (s *FounderService) ClearDashboard(ctx context.Context, _ *pb.ClearDashboardReq) (*pb.EmptyReply, error) {
	if err := s.ucInsight.ClearDashboard(ctx, ownerFromContext(ctx)); err != nil {
		return nil, err
	}
	return &pb.EmptyReply{}, nil
}

func (s *FounderService) Chat(ctx context.Context, req *pb.ChatReq) (*pb.ChatReply, error) {
	var att attachment.Attachment
	if req.Attachment != nil {
		att = attachment.Attachment{Name: req.Attachment.Name, Text: req.Attachment.Text, URL: req.Attachment.URL}
	}
	reply, err := s.ucChat.Chat(ctx, ownerFromContext(ctx), req.SessionID, req.Message, att)
	if err != nil {
		return nil, err
	}
	return &pb.ChatReply{SessionID: reply.SessionID, Reply: reply.Reply, Failed: reply.Failed}, nil
}

func (s *FounderService) GetChat(ctx context.Context, req *pb.GetChatReq) (*pb.GetChatReply, error) {
	msgs, err := s.ucChat.Transcript(ctx, ownerFromContext(ctx), req.SessionID)
	if err != nil {
		return nil, err
	}
	return &pb.GetChatReply{SessionID: req.SessionID, Messages: msgs}, nil
}

func (s *FounderService) ResetChat(ctx context.Context, req *pb.ResetChatReq) (*pb.EmptyReply, error) {
	if err := s.ucChat.Reset(ctx, ownerFromContext(ctx), req.SessionID); err != nil {
		return nil, err
	}
	return &pb.EmptyReply{}, nil
}

func (s *FounderService) ArchiveChat(ctx context.Context, req *pb.ArchiveChatReq) (*pb.ArchiveChatReply, error) {
	n, err := s.ucChat.Archive(ctx, ownerFromContext(ctx), req.SessionID, req.Topic)
	if err != nil {
		return nil, err
	}
	return &pb.ArchiveChatReply{Topic: req.Topic, Exchanges: n}, nil
}

func (s *FounderService) ListTopics(ctx context.Context, _ *pb.ListTopicsReq) (*pb.ListTopicsReply, error) {
	topics, err := s.ucChat.ListTopics(ctx, ownerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return &pb.ListTopicsReply{Topics: topics}, nil
}

func (s *FounderService) ListTopicMessages(ctx context.Context, req *pb.ListTopicMessagesReq) (*pb.ListTopicMessagesReply, error) {
	ex, err := s.ucChat.ListExchanges(ctx, ownerFromContext(ctx), req.Topic)
	if err != nil {
		return nil, err
	}
	return &pb.ListTopicMessagesReply{Topic: req.Topic, Exchanges: ex}, nil
}

func (s *FounderService) RenameTopic(ctx context.Context, req *pb.RenameTopicReq) (*pb.EmptyReply, error) {
	if err := s.ucChat.RenameTopic(ctx, ownerFromContext(ctx), req.Topic, req.NewTopic); err != nil {
		return nil, err
	}
	return &pb.EmptyReply{}, nil
}

func (s *FounderService) DeleteTopic(ctx context.Context, req *pb.DeleteTopicReq) (*pb.EmptyReply, error) {
	if err := s.ucChat.DeleteTopic(ctx, ownerFromContext(ctx), req.Topic); err != nil {
		return nil, err
	}
	return &pb.EmptyReply{}, nil
}

func (s *FounderService) ResumeTopic(ctx context.Context, req *pb.ResumeTopicReq) (*pb.ResumeTopicReply, error) {
	sid, msgs, err := s.ucChat.Resume(ctx, ownerFromContext(ctx), req.Topic)
	if err != nil {
		return nil, err
	}
	return &pb.ResumeTopicReply{SessionID: sid, Topic: req.Topic, Messages: msgs}, nil
}

func (s *FounderService) Research(ctx context.Context, req *pb.ResearchReq) (*pb.ResearchReply, error) {
	sources, err := s.ucInsight.Research(ctx, req.Q)
	if err != nil {
		return nil, err
	}
	if sources == nil {
		sources = []model.Source{}
	}
	return &pb.ResearchReply{Query: req.Q, Sources: sources}, nil
}
