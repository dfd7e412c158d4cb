package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"adisyon-report-service/internal/middleware"

	"go.uber.org/zap"
)

func zapError(err error) zap.Field {
	return zap.Error(err)
}

var errBranchRequired = errors.New("branch scope required")

// resolveBranchID decides which branch a report query covers. Staff and
// managers are pinned to the branch bound into their session; admins must
// name one via the branchId query param.
func resolveBranchID(r *http.Request, authCtx *middleware.AuthContext) (int64, error) {
	if authCtx.BranchID != nil {
		return *authCtx.BranchID, nil
	}
	if !authCtx.IsAdmin() {
		return 0, errBranchRequired
	}
	value := r.URL.Query().Get("branchId")
	if value == "" {
		return 0, errBranchRequired
	}
	branchID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errBranchRequired
	}
	return branchID, nil
}
