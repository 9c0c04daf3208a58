// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a string specifying a database connection role. Each role
// has a set of granted privileges which indicates which operations
// may be performed after using it for connecting to a database.
// The authentication information of roles are read from a pass file
// as indicated in the configuration file.
type Role string

// NormalRole is the default role which is used for all operations
// of the skweb server, including the creation of its tables by the
// `skweb db init` command. It must be created manually beforehand
// and be granted the CREATE privilege on the target schema.
const NormalRole Role = "skweb"
