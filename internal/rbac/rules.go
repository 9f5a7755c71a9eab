package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"respondent": {
		"quiz:view",
		"quiz:score",
		"attempt:create",
		"attempt:save",
		"attempt:submit",
		"attempt:view-own",
		"catalogue:view",
		"user:change_password",
	},
	"author": {
		"quiz:create",
		"quiz:delete",
		"quiz:view",
		"quiz:view-full",
		"quiz:score",
		"quiz:validate",
		"attempt:view-all",
		"catalogue:view",
		"users:bulk_upsert",
		"users:list",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
