package erp

import (
	"fmt"
	"time"
)

// Connection root fields, one per object graph. The paginator uses
// them to locate the connection inside the data payload.
const (
	VendorsField        = "vendors"
	ProductsField       = "products"
	PurchaseOrdersField = "purchaseOrders"
)

// VendorsQuery pages through the vendor graph.
const VendorsQuery = `
query Vendors($first: Int!, $after: String) {
  vendors(first: $first, after: $after) {
    edges {
      node {
        vendorId
        url
        name
        email
        phone
        leadTime
        terms
        status
        lastModified
      }
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

// ProductsQuery pages through the product graph, including the five
// per-facility stock readings.
const ProductsQuery = `
query Products($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      node {
        productId
        url
        sku
        name
        description
        category
        cost
        price
        reorderPoint
        reorderQuantity
        status
        lastModified
        quantityWarehouse
        quantityShowroom
        quantityAnnex
        quantityReturns
        quantityOverflow
      }
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

// PurchaseOrdersQuery pages through purchase orders within a date
// range. Line items arrive as a nested connection inlined up to 100
// lines per order.
const PurchaseOrdersQuery = `
query PurchaseOrders($first: Int!, $after: String, $fromDate: String!, $toDate: String!) {
  purchaseOrders(first: $first, after: $after, filter: {orderDateFrom: $fromDate, orderDateTo: $toDate}) {
    edges {
      node {
        orderNumber
        url
        orderType
        status
        vendor {
          name
          url
        }
        orderDate
        expectedDate
        subtotal
        tax
        total
        publicNotes
        privateNotes
        lines(first: 100) {
          edges {
            node {
              sku
              productUrl
              description
              quantityOrdered
              quantityReceived
              unitPrice
              lineTotal
            }
          }
        }
      }
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

// FormatDate renders a date in the ERP's own non-padded M/D/YYYY
// string format. The ERP rejects zero-padded values, so this quirk
// must be preserved exactly.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
