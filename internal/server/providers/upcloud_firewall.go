package providers

import (
	"context"
	"fmt"
	"net/http"

	"upmgr/internal/server/domain"
)

type firewallRuleEnvelope struct {
	FirewallRule domain.FirewallRule `json:"firewall_rule"`
}

type firewallRulesEnvelope struct {
	FirewallRules struct {
		FirewallRule []domain.FirewallRule `json:"firewall_rule"`
	} `json:"firewall_rules"`
}

// ConfigureFirewall applies rules to an existing server, posting them one at
// a time, then fetches and returns the server's resulting rule list. Rule
// application cannot run while server creation is still in progress; the API
// reports a conflict in that case.
func (u *UpCloudProvider) ConfigureFirewall(ctx context.Context, uuid string, rules []domain.FirewallRule) ([]domain.FirewallRule, error) {
	path := "/server/" + uuid + "/firewall_rule"

	for i, rule := range rules {
		body := firewallRuleEnvelope{FirewallRule: rule}
		if err := u.doJSON(ctx, http.MethodPost, path, body, nil); err != nil {
			return nil, fmt.Errorf("failed to apply firewall rule %d for server %q: %w", i+1, uuid, err)
		}
	}

	var out firewallRulesEnvelope
	if err := u.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list firewall rules for server %q: %w", uuid, err)
	}
	return out.FirewallRules.FirewallRule, nil
}
