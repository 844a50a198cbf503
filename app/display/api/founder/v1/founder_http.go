package v1

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationFounderRegister          = "/founder.v1.Founder/Register"
	OperationFounderLogin             = "/founder.v1.Founder/Login"
	OperationFounderSearch            = "/founder.v1.Founder/Search"
	OperationFounderGetDashboard      = "/founder.v1.Founder/GetDashboard"
	OperationFounderClearDashboard    = "/founder.v1.Founder/ClearDashboard"
	OperationFounderChat              = "/founder.v1.Founder/Chat"
	OperationFounderGetChat           = "/founder.v1.Founder/GetChat"
	OperationFounderResetChat         = "/founder.v1.Founder/ResetChat"
	OperationFounderArchiveChat       = "/founder.v1.Founder/ArchiveChat"
	OperationFounderListTopics        = "/founder.v1.Founder/ListTopics"
	OperationFounderListTopicMessages = "/founder.v1.Founder/ListTopicMessages"
	OperationFounderRenameTopic       = "/founder.v1.Founder/RenameTopic"
	OperationFounderDeleteTopic       = "/founder.v1.Founder/DeleteTopic"
	OperationFounderResumeTopic       = "/founder.v1.Founder/ResumeTopic"
	OperationFounderResearch          = "/founder.v1.Founder/Research"
)

// FounderHTTPServer 展示服务需要实现的接口
type FounderHTTPServer interface {
	Register(context.Context, *RegisterReq) (*RegisterReply, error)
	Login(context.Context, *LoginReq) (*LoginReply, error)
	Search(context.Context, *SearchReq) (*SearchReply, error)
	GetDashboard(context.Context, *GetDashboardReq) (*DashboardReply, error)
	ClearDashboard(context.Context, *ClearDashboardReq) (*EmptyReply, error)
	Chat(context.Context, *ChatReq) (*ChatReply, error)
	GetChat(context.Context, *GetChatReq) (*GetChatReply, error)
	ResetChat(context.Context, *ResetChatReq) (*EmptyReply, error)
	ArchiveChat(context.Context, *ArchiveChatReq) (*ArchiveChatReply, error)
	ListTopics(context.Context, *ListTopicsReq) (*ListTopicsReply, error)
	ListTopicMessages(context.Context, *ListTopicMessagesReq) (*ListTopicMessagesReply, error)
	RenameTopic(context.Context, *RenameTopicReq) (*EmptyReply, error)
	DeleteTopic(context.Context, *DeleteTopicReq) (*EmptyReply, error)
	ResumeTopic(context.Context, *ResumeTopicReq) (*ResumeTopicReply, error)
	Research(context.Context, *ResearchReq) (*ResearchReply, error)
}

// RegisterFounderHTTPServer 注册全部路由
func RegisterFounderHTTPServer(s *http.Server, srv FounderHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/auth/register", _Founder_Register0_HTTP_Handler(srv))
	r.POST("/v1/auth/login", _Founder_Login0_HTTP_Handler(srv))
	r.POST("/v1/search", _Founder_Search0_HTTP_Handler(srv))
	r.GET("/v1/dashboard", _Founder_GetDashboard0_HTTP_Handler(srv))
	r.DELETE("/v1/dashboard", _Founder_ClearDashboard0_HTTP_Handler(srv))
	r.POST("/v1/chat", _Founder_Chat0_HTTP_Handler(srv))
	r.GET("/v1/chat/{session_id}", _Founder_GetChat0_HTTP_Handler(srv))
	r.DELETE("/v1/chat/{session_id}", _Founder_ResetChat0_HTTP_Handler(srv))
	r.POST("/v1/chat/{session_id}/archive", _Founder_ArchiveChat0_HTTP_Handler(srv))
	r.GET("/v1/topics", _Founder_ListTopics0_HTTP_Handler(srv))
	r.GET("/v1/topics/{topic}/messages", _Founder_ListTopicMessages0_HTTP_Handler(srv))
	r.PUT("/v1/topics/{topic}", _Founder_RenameTopic0_HTTP_Handler(srv))
	r.DELETE("/v1/topics/{topic}", _Founder_DeleteTopic0_HTTP_Handler(srv))
	r.POST("/v1/topics/{topic}/resume", _Founder_ResumeTopic0_HTTP_Handler(srv))
	r.GET("/v1/research", _Founder_Research0_HTTP_Handler(srv))
}

func _Founder_Register0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in RegisterReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderRegister)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Register(ctx, req.(*RegisterReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*RegisterReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_Login0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in LoginReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderLogin)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Login(ctx, req.(*LoginReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*LoginReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_Search0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SearchReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderSearch)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Search(ctx, req.(*SearchReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SearchReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_GetDashboard0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetDashboardReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderGetDashboard)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetDashboard(ctx, req.(*GetDashboardReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*DashboardReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_ClearDashboard0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ClearDashboardReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderClearDashboard)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ClearDashboard(ctx, req.(*ClearDashboardReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*EmptyReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_Chat0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ChatReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderChat)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Chat(ctx, req.(*ChatReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ChatReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_GetChat0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetChatReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderGetChat)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetChat(ctx, req.(*GetChatReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*GetChatReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_ResetChat0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ResetChatReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderResetChat)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ResetChat(ctx, req.(*ResetChatReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*EmptyReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_ArchiveChat0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ArchiveChatReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderArchiveChat)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ArchiveChat(ctx, req.(*ArchiveChatReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ArchiveChatReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_ListTopics0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListTopicsReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderListTopics)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListTopics(ctx, req.(*ListTopicsReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListTopicsReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_ListTopicMessages0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListTopicMessagesReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderListTopicMessages)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListTopicMessages(ctx, req.(*ListTopicMessagesReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListTopicMessagesReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_RenameTopic0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in RenameTopicReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderRenameTopic)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.RenameTopic(ctx, req.(*RenameTopicReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*EmptyReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_DeleteTopic0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in DeleteTopicReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderDeleteTopic)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.DeleteTopic(ctx, req.(*DeleteTopicReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*EmptyReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_ResumeTopic0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ResumeTopicReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderResumeTopic)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ResumeTopic(ctx, req.(*ResumeTopicReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ResumeTopicReply)
		return ctx.Result(200, reply)
	}
}

func _Founder_Research0_HTTP_Handler(srv FounderHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ResearchReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationFounderResearch)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Research(ctx, req.(*ResearchReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ResearchReply)
		return ctx.Result(200, reply)
	}
}
