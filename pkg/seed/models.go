package seed

// Sale is one line of the sales ledger. Date is stored as YYYY-MM-DD.
// Money columns carry no explicit type so each dialect stores a double.
type Sale struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Date         string `gorm:"type:date;not null"`
	CustomerID   uint   `gorm:"column:customer_id"`
	CustomerName string `gorm:"size:255"`
	ProductName  string `gorm:"size:255"`
	Category     string `gorm:"size:100"`
	Amount       float64
	Quantity     int
	SalesRep     string `gorm:"size:100"`
	Region       string `gorm:"size:50"`
}

// Customer is a buying organization.
type Customer struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	Name             string `gorm:"size:255;not null"`
	Email            string `gorm:"size:255"`
	Phone            string `gorm:"size:50"`
	Address          *string
	RegistrationDate string `gorm:"type:date"`
	CustomerType     string `gorm:"size:50"`
	CreditLimit      float64
}

// Product is a catalog item.
type Product struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:255;not null"`
	Category      string `gorm:"size:100"`
	Price         float64
	Cost          float64
	StockQuantity int
	Supplier      string `gorm:"size:255"`
}

func (Sale) TableName() string     { return "sales" }
func (Customer) TableName() string { return "customers" }
func (Product) TableName() string  { return "products" }

// catalog is the fixed product list of the demo store.
var catalog = []Product{
	{Name: "Laptop Pro", Category: "Electronics", Price: 1299.99, Cost: 800.00, StockQuantity: 45, Supplier: "TechSupply Inc"},
	{Name: "Wireless Mouse", Category: "Electronics", Price: 29.99, Cost: 15.00, StockQuantity: 120, Supplier: "TechSupply Inc"},
	{Name: "Office Chair", Category: "Furniture", Price: 249.99, Cost: 150.00, StockQuantity: 30, Supplier: "FurnCorp"},
	{Name: "Desk Lamp", Category: "Furniture", Price: 89.99, Cost: 45.00, StockQuantity: 75, Supplier: "LightCo"},
	{Name: "Coffee Maker", Category: "Appliances", Price: 129.99, Cost: 80.00, StockQuantity: 25, Supplier: "ApplianceWorld"},
	{Name: "Water Bottle", Category: "Accessories", Price: 19.99, Cost: 8.00, StockQuantity: 200, Supplier: "LifeStyle Ltd"},
	{Name: "Notebook Set", Category: "Office Supplies", Price: 24.99, Cost: 12.00, StockQuantity: 150, Supplier: "PaperCorp"},
	{Name: "Smartphone", Category: "Electronics", Price: 899.99, Cost: 600.00, StockQuantity: 60, Supplier: "TechSupply Inc"},
	{Name: "Standing Desk", Category: "Furniture", Price: 599.99, Cost: 350.00, StockQuantity: 15, Supplier: "FurnCorp"},
	{Name: "Headphones", Category: "Electronics", Price: 199.99, Cost: 120.00, StockQuantity: 80, Supplier: "AudioTech"},
}

var customerNames = []string{
	"Acme Corporation", "Global Solutions LLC", "TechStart Inc", "Creative Agency",
	"Retail Plus", "Manufacturing Corp", "Service Pro", "Innovation Labs",
	"Digital Marketing Co", "Consulting Group", "Local Restaurant", "Healthcare Partners",
	"Education Foundation", "Non-Profit Org", "Construction Company", "Real Estate Group",
	"Financial Services", "Transportation LLC", "Energy Solutions", "Food Distribution",
}

var (
	customerTypes = []string{"Enterprise", "Small Business", "Startup", "Non-Profit"}
	salesReps     = []string{"Alice Johnson", "Bob Smith", "Carol Williams", "David Brown"}
	regions       = []string{"North", "South", "East", "West"}
)
