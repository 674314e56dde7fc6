package handlers

import (
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// familyScope resolves the family a principal may act on. Tokens without a
// FamilyId claim are authenticated but not scoped to any family, so every
// family-bound route rejects them with 403.
func familyScope(c *serverless.Context, principal *auth.Principal) (string, serverless.Response, error) {
	familyID, ok := principal.FamilyID()
	if !ok {
		resp, err := c.CreateForbiddenResponse("")
		if err != nil {
			return "", nil, err
		}
		return "", resp, nil
	}
	return familyID.String(), nil, nil
}
