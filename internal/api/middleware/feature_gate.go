package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
)

// GatedPrefixes maps path prefixes to the capability they require
var GatedPrefixes = map[string]plan.Resource{
	"/analytics":        plan.ResourceAnalytics,
	"/reports":          plan.ResourceAnalytics,
	"/api/v1/analytics": plan.ResourceAnalytics,
	"/api/v1/reports":   plan.ResourceAnalytics,
}

// FeatureGate guards capability-gated paths. It must run after
// OptionalAuthMiddleware so the identity is on the context.
func FeatureGate(evaluator entitlement.Evaluator, appURL string, log *logger.Logger) func(http.Handler) http.Handler {
	appURL = strings.TrimRight(appURL, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resource, gated := gatedResource(r.URL.Path)
			if !gated {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := GetUserID(r)
			if !ok {
				target := appURL + "/login?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			res := evaluator.Evaluate(r.Context(), userID, resource)
			switch {
			case res.Unavailable():
				log.WithTenant(userID).WithError(res.Err).Warn("Feature gate could not evaluate entitlement")
				utils.WriteError(w, errors.ServiceUnavailable("Entitlements are temporarily unavailable, please retry"))
			case res.NeedsUpgrade:
				AddLogField(r, "gated_feature", string(resource))
				http.Redirect(w, r, appURL+"/pricing?feature="+url.QueryEscape(string(resource)), http.StatusSeeOther)
			case res.Allowed:
				next.ServeHTTP(w, r)
			default:
				utils.WriteError(w, errors.Forbidden("Feature not available"))
			}
		})
	}
}

// gatedResource matches whole path segments so /analyticsfoo is not gated
func gatedResource(path string) (plan.Resource, bool) {
	for prefix, resource := range GatedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return resource, true
		}
	}
	return "", false
}
