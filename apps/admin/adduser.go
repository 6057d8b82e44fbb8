package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// addUser updates or creates a staff user.User
func (cli *commandLine) addUser(name, uname, email, pwd string, roles []string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	for _, role := range roles {
		if !core.ContainsString(user.AllRoles, role) {
			return fmt.Errorf("unknown role %q", role)
		}
	}
	if len(roles) == 0 {
		roles = []string{user.RoleAdminOwner}
	}

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Username: uname})
	if core.IsNotFound(err) {
		usr, err = cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email})
	}
	switch {
	case core.IsNotFound(err):
		usr = user.User{Settings: user.DefaultSettings(), CreatedAt: now}
	case err != nil:
		return errors.Wrap(err, "getting user")
	}

	// Email and username must stay unique across the other users.
	if err = cli.usrRepo.CheckUniqueness(ctx, uname, email, "", []user.User{usr}); err != nil {
		return err
	}

	if name = core.CleanName(name); name == "" {
		name = usr.Name
	}
	if name == "" {
		name = uname
	}
	usr.Name = name
	usr.Username = uname
	usr.Email = email
	usr.Roles = roles
	usr.UpdatedAt = now
	usr.SetActive(true)
	if err = usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "setting password")
	}
	if usr, err = cli.usrRepo.UpdateOrCreateUser(ctx, usr); err != nil {
		return errors.Wrap(err, "saving user")
	}
	cli.logger.Info(fmt.Sprintf("user %q saved with roles %v", usr.Username, usr.Roles))
	return nil
}
