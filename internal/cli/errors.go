// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import "errors"

var errPurgeNotConfirmed = errors.New("purge deletes all data, pass --yes to confirm")
