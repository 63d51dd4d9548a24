package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/accounts-backend/internal/bootstrap"
	firebaseclient "github.com/GregMSThompson/accounts-backend/internal/client/firebase"
	"github.com/GregMSThompson/accounts-backend/internal/config"
	"github.com/GregMSThompson/accounts-backend/internal/handlers"
	"github.com/GregMSThompson/accounts-backend/internal/response"
	"github.com/GregMSThompson/accounts-backend/internal/router"
	"github.com/GregMSThompson/accounts-backend/internal/services"
	"github.com/GregMSThompson/accounts-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// identity gateway
	identity := firebaseclient.NewAdapter(bs.Firebase)

	// stores
	pstore := store.NewProfileStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)

	// services
	aserv := services.NewAccountService(identity, pstore)
	cserv := services.NewClaimsService(identity)
	tserv := services.NewTransactionService(tstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.AccountSvc = aserv
	deps.ClaimsSvc = cserv
	deps.TransactionSvc = tserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
