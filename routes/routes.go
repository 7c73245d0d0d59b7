package routes

import (
	"net/http"

	"esgdashboard/handlers"
	"esgdashboard/middlewares"
)

type Handlers struct {
	Initiative   *handlers.InitiativeHandler
	Indicator    *handlers.IndicatorHandler
	Draft        *handlers.DraftHandler
	Contribution *handlers.ContributionHandler
	Report       *handlers.ReportHandler
	Analytics    *handlers.AnalyticsHandler
}

func SetupRoutes(h Handlers, jwtSecret string) *http.ServeMux {
	mux := http.NewServeMux()

	// Apply JWT middleware to all routes
	jwtMiddleware := middlewares.JWTMiddleware(jwtSecret)
	protect := func(handlerFunc http.HandlerFunc) http.Handler {
		return jwtMiddleware(handlerFunc)
	}

	// Indicator catalog
	mux.Handle("POST /api/indicators", protect(h.Indicator.CreateIndicator))
	mux.Handle("GET /api/indicators", protect(h.Indicator.GetAllIndicators))

	// Initiative lifecycle
	mux.Handle("POST /api/initiatives", protect(h.Initiative.CreateInitiative))
	mux.Handle("GET /api/initiatives", protect(h.Initiative.GetAllInitiatives))
	mux.Handle("GET /api/initiatives/{id}", protect(h.Initiative.GetInitiativeByID))
	mux.Handle("POST /api/initiatives/{id}/fanout", protect(h.Initiative.FanOutDataRequests))
	mux.Handle("GET /api/initiatives/{id}/data-requests", protect(h.Initiative.GetDataRequests))
	mux.Handle("GET /api/initiatives/{id}/completeness", protect(h.Initiative.GetCompleteness))
	mux.Handle("GET /api/initiatives/{id}/contributions", protect(h.Contribution.GetContributionsByInitiative))

	// Draft autosave and contribution workflow
	mux.Handle("PUT /api/data-requests/{id}/draft", protect(h.Draft.SaveDraft))
	mux.Handle("GET /api/data-requests/{id}/draft", protect(h.Draft.GetDraft))
	mux.Handle("POST /api/data-requests/{id}/contributions", protect(h.Contribution.SubmitContribution))
	mux.Handle("GET /api/data-requests/{id}/contribution", protect(h.Contribution.GetActiveContribution))
	mux.Handle("GET /api/contributions/{id}", protect(h.Contribution.GetContributionByID))
	mux.Handle("POST /api/contributions/{id}/review", protect(h.Contribution.ReviewContribution))

	// Report generation gate
	mux.Handle("POST /api/initiatives/{id}/report", protect(h.Report.RequestReport))
	mux.Handle("GET /api/initiatives/{id}/reports", protect(h.Report.GetReportsByInitiative))
	mux.Handle("GET /api/reports/{id}", protect(h.Report.GetReportByID))

	// Analytics
	mux.Handle("GET /api/analytics/portfolio", protect(h.Analytics.GetPortfolioSummary))

	return mux
}
