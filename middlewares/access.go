package middlewares

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/yeremiapane/intranet-portal/config"
)

const accessModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// AccessEnforcer decides which portal system may call which route.
type AccessEnforcer struct {
	enforcer *casbin.Enforcer
}

func NewAccessEnforcer(policy config.AccessPolicy) (*AccessEnforcer, error) {
	m, err := model.NewModelFromString(accessModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for system, access := range policy.Systems {
		for _, route := range access.Routes {
			if _, err := enforcer.AddPolicy(system, route.Path, methodsPattern(route.Methods)); err != nil {
				return nil, fmt.Errorf("access policy %s %s: %w", system, route.Path, err)
			}
		}
	}
	return &AccessEnforcer{enforcer: enforcer}, nil
}

func (a *AccessEnforcer) Allow(system, path, method string) (bool, error) {
	return a.enforcer.Enforce(system, path, strings.ToUpper(method))
}

func methodsPattern(methods []string) string {
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(strings.TrimSpace(m))
	}
	return "^(" + strings.Join(upper, "|") + ")$"
}
