package chipsandguac

import (
	"bytes"
	"strconv"

	"github.com/jquatier/chipsandguac/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// OrderItem is one line of a past order.
type OrderItem struct {
	Name    string
	Details string
}

// Order is a favorite or recent order from the user's profile.
type Order struct {
	Id    int64
	Name  string
	Items []OrderItem
}

// ReviewItem is one item on the pre-placement review page. Name is the meal
// the item belongs to, ItemName and ItemDetails describe the item itself.
type ReviewItem struct {
	Name        string
	ItemName    string
	ItemDetails string
}

// OrderReview snapshots the review page together with the pickup times the
// site offered against that same page render.
type OrderReview struct {
	Location    string
	PickupTimes []string
	Items       []ReviewItem
}

// Location is one result of a zipcode lookup.
type Location struct {
	Id   int
	Name string
}

// parseOrderHistory scans the favorite/recent order blocks on the location
// home page. A page without order blocks yields an empty slice.
func parseOrderHistory(page []byte) ([]Order, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var orders []Order
	doc.Find("div.orderDetails").Each(func(_ int, block *goquery.Selection) {
		id, err := strconv.ParseInt(block.AttrOr("data-orderid", ""), 10, 64)
		if err != nil {
			return
		}

		var items []OrderItem
		block.Find("div.orderItem").Each(func(_ int, item *goquery.Selection) {
			items = append(items, OrderItem{
				Name:    item.Find("div.orderItemTitle").Text(),
				Details: item.Find("div.orderItemDetails").Text(),
			})
		})

		orders = append(orders, Order{
			Id:    id,
			Name:  block.Find("div.orderName").Text(),
			Items: items,
		})
	})

	return orders, nil
}

func parseOrderReview(reviewPage []byte, pickup pickupTimesResponse) (OrderReview, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(reviewPage))
	if err != nil {
		return OrderReview{}, err
	}

	var review OrderReview
	for _, slot := range pickup.SelectList {
		review.PickupTimes = append(review.PickupTimes, slot.Value)
	}

	doc.Find("div.mealItem").Each(func(_ int, item *goquery.Selection) {
		// the meal name lives on a sibling of the item's parent
		review.Items = append(review.Items, ReviewItem{
			Name:        htmlutil.CollapsedText(item.Parent().Prev().Find("div.mealName")),
			ItemName:    item.Find("div.mealItemTitle").Text(),
			ItemDetails: item.Find("div.mealItemDetails").Text(),
		})
	})

	review.Location = htmlutil.CollapsedText(doc.Find("#placeOrderLocation > p > span").First())

	return review, nil
}

// parseLocations extracts the result blocks of a zipcode search. Blocks
// without a numeric location id are skipped.
func parseLocations(page []byte) ([]Location, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var locations []Location
	doc.Find("div.dvRestaurant").Each(func(_ int, block *goquery.Selection) {
		id, err := strconv.Atoi(block.Find("div.orderNow > a").AttrOr("data-locationid", ""))
		if err != nil {
			return
		}
		locations = append(locations, Location{
			Id:   id,
			Name: htmlutil.CollapsedText(block.Find("div.dvRestName")),
		})
	})

	return locations, nil
}
