// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Models of this package are the parking areas, their numbered slots,
// the registered vehicles, and their owners. Their JSON tags describe
// the REST representation, while the table layouts are kept by the
// repository packages in the adapters layer.
package model
