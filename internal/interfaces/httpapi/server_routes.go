package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}/lineup", handler.GetWeekLineup)
	mux.HandleFunc("PUT /v1/teams/{teamID}/lineup/slots", handler.AssignLineupSlot)
	mux.HandleFunc("PUT /v1/teams/{teamID}/lineup/bench", handler.BenchLineupPlayer)
	mux.HandleFunc("GET /v1/locks/{nflTeam}", handler.GetLockStatus)
}

func registerScoringRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scores/weeks/{week}", handler.ListWeekScores)
	mux.HandleFunc("GET /v1/scores/weeks/{week}/readiness", handler.GetWeekScoreReadiness)
	mux.HandleFunc("POST /v1/scores/weeks/{week}/compute", handler.ComputeWeekScores)
	mux.HandleFunc("POST /v1/scores/weeks/{week}/persist", handler.PersistWeekScores)
	mux.HandleFunc("GET /v1/teams/{teamID}/scores/{week}", handler.GetTeamScore)
	mux.HandleFunc("GET /v1/players/{playerID}/statline", handler.GetPlayerStatLine)
}

func registerRulesRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/rules", handler.UploadRuleSet)
	mux.HandleFunc("GET /v1/rules", handler.ListRuleSets)
	mux.HandleFunc("GET /v1/rules/active", handler.GetActiveRuleSet)
	mux.HandleFunc("POST /v1/rules/{ruleSetID}/activate", handler.ActivateRuleSet)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-week", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncWeekJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-week", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeWeekJob)))
	mux.Handle("POST /v1/internal/events/bonus", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecordBonusEvent)))
}
