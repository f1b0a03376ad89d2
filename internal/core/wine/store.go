// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wine

import "context"

// Repository is the read side of the catalog store.
type Repository interface {
	// LoadAll returns every active catalog row. Rows are not validated here;
	// [NewSnapshot] decides what enters the snapshot.
	LoadAll(context context.Context) ([]Wine, error)
}
