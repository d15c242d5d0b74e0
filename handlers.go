package newsdesk

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// breakingNewsID is the segment under /api/articles/ that serves breaking news instead of
// a single article. httprouter doesn't allow a static segment next to the :id wildcard.
const breakingNewsID = "breaking-news"

// maxBodyBytes caps the size of request bodies.
const maxBodyBytes = 1 << 20

// HandleEndpoints handles requests describing the available endpoints.
func (s *Server) HandleEndpoints() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		respondJSON(res, http.StatusOK, map[string]interface{}{"endpoints": endpoints})
	}
}

// HandleListArticles handles requests listing articles, filtered by topic and author,
// sorted and paginated according to the query string.
func (s *Server) HandleListArticles() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		q, err := ParseArticleQuery(req.URL.Query())
		if err != nil {
			respondError(res, req, err)
			return
		}

		page, err := s.engine.ListArticles(req.Context(), q)
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusOK, page)
	}
}

// HandleGetArticle handles requests for a single article, with its comment count. It also
// serves breaking news, see breakingNewsID.
func (s *Server) HandleGetArticle() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, params httprouter.Params) {
		rawID := params.ByName("id")
		if rawID == breakingNewsID {
			s.handleBreakingNews(res, req)
			return
		}

		id, err := ParseID(rawID)
		if err != nil {
			respondError(res, req, err)
			return
		}

		article, err := s.engine.FindArticle(req.Context(), id)
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusOK, map[string]interface{}{"article": article})
	}
}

func (s *Server) handleBreakingNews(res http.ResponseWriter, req *http.Request) {
	news, err := s.engine.BreakingNews(req.Context())
	if err != nil {
		respondError(res, req, err)
		return
	}

	respondJSON(res, http.StatusOK, map[string]interface{}{"breaking_news": news})
}

// HandleCreateArticle handles requests creating an article, then runs the article hooks.
func (s *Server) HandleCreateArticle() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		payload, err := DecodeArticlePayload(http.MaxBytesReader(res, req.Body, maxBodyBytes))
		if err != nil {
			respondError(res, req, err)
			return
		}

		article, err := s.engine.CreateArticle(req.Context(), payload)
		if err != nil {
			respondError(res, req, err)
			return
		}
		s.metrics.articlesCreated.Inc()

		for _, h := range s.articleHooks {
			if err := h(req.Context(), article); err != nil {
				zerolog.Ctx(req.Context()).Warn().Err(err).Int64("article_id", article.ID).Msg("Article hook failed")
			}
		}

		respondJSON(res, http.StatusCreated, map[string]interface{}{"article": article})
	}
}

// HandleVoteArticle handles requests adding inc_votes to the votes of an article.
func (s *Server) HandleVoteArticle() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, params httprouter.Params) {
		id, err := ParseID(params.ByName("id"))
		if err != nil {
			respondError(res, req, err)
			return
		}

		payload, err := DecodeVotePayload(http.MaxBytesReader(res, req.Body, maxBodyBytes))
		if err != nil {
			respondError(res, req, err)
			return
		}

		article, err := s.engine.VoteArticle(req.Context(), id, payload.IncVotes)
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusOK, map[string]interface{}{"article": article})
	}
}

// HandleDeleteArticle handles requests deleting an article and its comments.
func (s *Server) HandleDeleteArticle() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, params httprouter.Params) {
		id, err := ParseID(params.ByName("id"))
		if err != nil {
			respondError(res, req, err)
			return
		}

		if err := s.engine.DeleteArticle(req.Context(), id); err != nil {
			respondError(res, req, err)
			return
		}

		res.WriteHeader(http.StatusNoContent)
	}
}

// HandleListComments handles requests listing the comments of an article, newest first.
func (s *Server) HandleListComments() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, params httprouter.Params) {
		id, err := ParseID(params.ByName("id"))
		if err != nil {
			respondError(res, req, err)
			return
		}

		p, err := ParsePagination(req.URL.Query())
		if err != nil {
			respondError(res, req, err)
			return
		}

		page, err := s.engine.ListComments(req.Context(), id, p)
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusOK, page)
	}
}

// HandleCreateComment handles requests posting a comment on an article.
func (s *Server) HandleCreateComment() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, params httprouter.Params) {
		id, err := ParseID(params.ByName("id"))
		if err != nil {
			respondError(res, req, err)
			return
		}

		payload, err := DecodeCommentPayload(http.MaxBytesReader(res, req.Body, maxBodyBytes))
		if err != nil {
			respondError(res, req, err)
			return
		}

		comment, err := s.engine.CreateComment(req.Context(), id, payload)
		if err != nil {
			respondError(res, req, err)
			return
		}
		s.metrics.commentsCreated.Inc()

		respondJSON(res, http.StatusCreated, map[string]interface{}{"comment": comment})
	}
}

func (s *Server) HandleDeleteComment() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, params httprouter.Params) {
		id, err := ParseID(params.ByName("id"))
		if err != nil {
			respondError(res, req, err)
			return
		}

		if err := s.engine.DeleteComment(req.Context(), id); err != nil {
			respondError(res, req, err)
			return
		}

		res.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) HandleListTopics() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		topics, err := s.engine.ListTopics(req.Context())
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusOK, map[string]interface{}{"topics": topics})
	}
}

func (s *Server) HandleCreateTopic() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		payload, err := DecodeTopicPayload(http.MaxBytesReader(res, req.Body, maxBodyBytes))
		if err != nil {
			respondError(res, req, err)
			return
		}

		topic, err := s.engine.CreateTopic(req.Context(), payload)
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusCreated, map[string]interface{}{"topic": topic})
	}
}

func (s *Server) HandleListUsers() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		users, err := s.engine.ListUsers(req.Context())
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusOK, map[string]interface{}{"users": users})
	}
}

func (s *Server) HandleGetUser() httprouter.Handle {
	return func(res http.ResponseWriter, req *http.Request, params httprouter.Params) {
		user, err := s.engine.FindUser(req.Context(), params.ByName("username"))
		if err != nil {
			respondError(res, req, err)
			return
		}

		respondJSON(res, http.StatusOK, map[string]interface{}{"user": user})
	}
}
