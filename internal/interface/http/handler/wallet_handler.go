package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/wallet"
)

type WalletHandler struct {
	getWalletUC *wallet.GetWalletUseCase
	listTxUC    *wallet.ListTransactionsUseCase
}

func NewWalletHandler(getWalletUC *wallet.GetWalletUseCase, listTxUC *wallet.ListTransactionsUseCase) *WalletHandler {
	return &WalletHandler{getWalletUC: getWalletUC, listTxUC: listTxUC}
}

// GetWallet обрабатывает GET /api/wallet. Кошелёк создаётся при первом обращении.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	overview, err := h.getWalletUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToWalletResponse(overview))
}

func (h *WalletHandler) ListTransactions(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	txs, err := h.listTxUC.Execute(c.Request.Context(), actor, parseIntQuery(c, "limit", wallet.MaxTransactions))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToTransactionResponses(txs))
}
