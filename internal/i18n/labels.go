package i18n

// Labels is every fixed string the application renders.
type Labels struct {
	// Navigation
	Billing string `json:"billing"`
	Stock   string `json:"stock"`

	// Bill header and table
	Bill           string `json:"bill"`
	CustomerName   string `json:"customerName"`
	Customer       string `json:"customer"`
	Mobile         string `json:"mobile"`
	Date           string `json:"date"`
	SerialNo       string `json:"serialNo"`
	Product        string `json:"product"`
	Quantity       string `json:"quantity"`
	Price          string `json:"price"`
	Total          string `json:"total"`
	GrandTotal     string `json:"grandTotal"`
	Action         string `json:"action"`
	NoItems        string `json:"noItems"`
	ThankYou       string `json:"thankYou"`
	SearchProducts string `json:"searchProducts"`
	NoProducts     string `json:"noProducts"`
	AddItem        string `json:"addItem"`
	PrintBill      string `json:"printBill"`
	DownloadPDF    string `json:"downloadPdf"`
	SaveBill       string `json:"saveBill"`

	// Row actions
	Edit   string `json:"edit"`
	Remove string `json:"remove"`
	Save   string `json:"save"`
	Cancel string `json:"cancel"`

	// Stock screen
	StockTitle        string `json:"stockTitle"`
	NameEnglish       string `json:"nameEnglish"`
	NameTamil         string `json:"nameTamil"`
	NoStockItems      string `json:"noStockItems"`
	AddStockItem      string `json:"addStockItem"`
	Delete            string `json:"delete"`
	StockActionsLabel string `json:"actions"`
}

var labels = map[Language]Labels{
	English: {
		Billing:           "Billing",
		Stock:             "Stock",
		Bill:              "BILL",
		CustomerName:      "Customer Name",
		Customer:          "Customer",
		Mobile:            "Mobile",
		Date:              "Date",
		SerialNo:          "S.No",
		Product:           "Product",
		Quantity:          "Qty",
		Price:             "Price",
		Total:             "Total",
		GrandTotal:        "Grand Total",
		Action:            "Action",
		NoItems:           "No items added to bill",
		ThankYou:          "Thank you for your purchase!",
		SearchProducts:    "Search Products",
		NoProducts:        "No products found",
		AddItem:           "Add Item",
		PrintBill:         "Print Bill",
		DownloadPDF:       "Download PDF",
		SaveBill:          "Save Bill",
		Edit:              "Edit",
		Remove:            "Remove",
		Save:              "Save",
		Cancel:            "Cancel",
		StockTitle:        "Stock Management",
		NameEnglish:       "Product Name (English)",
		NameTamil:         "Product Name (Tamil)",
		NoStockItems:      "No stock items available",
		AddStockItem:      "Add Item",
		Delete:            "Delete",
		StockActionsLabel: "Actions",
	},
	Tamil: {
		Billing:           "பில் செய்தல்",
		Stock:             "பொருட்கள்",
		Bill:              "பில்",
		CustomerName:      "வாடிக்கையாளர் பெயர்",
		Customer:          "வாடிக்கையாளர்",
		Mobile:            "மொபைல் எண்",
		Date:              "தேதி",
		SerialNo:          "வ.எண்",
		Product:           "பொருள்",
		Quantity:          "அளவு",
		Price:             "விலை",
		Total:             "மொத்தம்",
		GrandTotal:        "மொத்த தொகை",
		Action:            "செயல்",
		NoItems:           "பில் உருப்படிகள் இல்லை",
		ThankYou:          "உங்கள் வாங்குதலுக்கு நன்றி!",
		SearchProducts:    "தேடுதல்",
		NoProducts:        "பொருட்கள் இல்லை",
		AddItem:           "சேர்க்க",
		PrintBill:         "அச்சிடு",
		DownloadPDF:       "டவுன்லோட் (PDF)",
		SaveBill:          "சேமி",
		Edit:              "திருத்து",
		Remove:            "நீக்கு",
		Save:              "சேமி",
		Cancel:            "ரத்து செய்",
		StockTitle:        "பொருட்கள் மேலாண்மை",
		NameEnglish:       "பொருள் பெயர் (ஆங்கிலம்)",
		NameTamil:         "பொருள் பெயர் (தமிழ்)",
		NoStockItems:      "பொருட்கள் எதுவும் இல்லை",
		AddStockItem:      "பொருளை சேர்",
		Delete:            "நீக்கு",
		StockActionsLabel: "செயல்கள்",
	},
}

// For returns the label set of l; unknown languages get English.
func For(l Language) Labels {
	if ls, ok := labels[l]; ok {
		return ls
	}
	return labels[English]
}
