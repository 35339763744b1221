// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"

	marketwatchhandler "psx_backend/internal/feature/marketwatch/transport/handler"
	portfoliohandler "psx_backend/internal/feature/portfolio/transport/handler"
	synchandler "psx_backend/internal/feature/sync/transport/handler"
	tickerhandler "psx_backend/internal/feature/tickers/transport/handler"
	transactionhandler "psx_backend/internal/feature/transactions/transport/handler"
	"psx_backend/internal/platform/http/handler"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(
	tickers *tickerhandler.TickerHandler,
	marketWatch *marketwatchhandler.MarketWatchHandler,
	portfolios *portfoliohandler.PortfolioHandler,
	transactions *transactionhandler.TransactionHandler,
	sync *synchandler.SyncHandler,
) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handler.Health)

	r.POST("/sync", sync.Run)

	r.GET("/tickers", tickers.List)
	r.POST("/tickers", tickers.Add)
	r.GET("/tickers/:symbol/points", tickers.GetPoints)

	r.GET("/marketwatch", marketWatch.List)
	r.GET("/constituents/search", marketWatch.SearchConstituents)

	r.GET("/transactions/:date", transactions.GetByDate)

	r.POST("/portfolios", portfolios.Create)
	r.GET("/portfolios", portfolios.List)
	r.GET("/portfolios/:name", portfolios.Get)
	r.PUT("/portfolios/:name", portfolios.UpdateSymbols)
	r.DELETE("/portfolios/:name", portfolios.Delete)

	return r
}
