// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package pcibus

import (
	"fmt"

	"github.com/jaypipes/pcidb"
	"github.com/pkg/errors"
)

// Names resolves PCI ids to human readable names. Unknown ids yield "".
type Names interface {
	DeviceName(vendorID, deviceID uint16) string
	VendorName(vendorID uint16) string
}

// PCIDB looks names up in the system pci.ids database.
type PCIDB struct {
	db *pcidb.PCIDB
}

// NewPCIDB loads the pci.ids database found below root.
func NewPCIDB(root string) (*PCIDB, error) {
	db, err := pcidb.New(pcidb.WithChroot(root))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pci.ids")
	}
	return &PCIDB{db: db}, nil
}

func pciID(id uint16) string {
	return fmt.Sprintf("%04x", id)
}

// DeviceName returns the product name of vendorID:deviceID.
func (p *PCIDB) DeviceName(vendorID, deviceID uint16) string {
	if product, ok := p.db.Products[pciID(vendorID)+pciID(deviceID)]; ok {
		return product.Name
	}
	return ""
}

// VendorName returns the name of vendorID.
func (p *PCIDB) VendorName(vendorID uint16) string {
	if vendor, ok := p.db.Vendors[pciID(vendorID)]; ok {
		return vendor.Name
	}
	return ""
}
