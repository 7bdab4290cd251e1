package reduce_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/bjaus/reduce"
)

// Profile is a composite state.
type Profile struct {
	Name   string
	Age    int
	Active bool
}

// Rename changes a profile's name.
type Rename struct{ Name string }

// Birthday makes a profile one year older.
type Birthday struct{}

// names handles name actions; Scan discovers its methods.
type names struct{}

func (names) OnRename(name string, a Rename) string { return a.Name }

func Example() {
	r := reduce.New[Profile]()

	reduce.On(r, func(p Profile, a Rename) Profile {
		p.Name = a.Name
		return p
	})
	reduce.On(r, func(p Profile, _ Birthday) Profile {
		p.Age++
		return p
	})

	p, err := r.Reduce(Profile{Name: "ada", Age: 36}, Birthday{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%+v\n", p)

	// Output:
	// {Name:ada Age:37 Active:false}
}

func Example_structural() {
	s, err := reduce.NewStructural(reduce.StructShape[Profile]())
	if err != nil {
		log.Fatal(err)
	}

	ages := reduce.New[int]()
	reduce.On(ages, func(age int, _ Birthday) int { return age + 1 })

	if err := reduce.SetFieldReducer(s, "Name", reduce.New[string]().Scan(names{})); err != nil {
		log.Fatal(err)
	}
	if err := reduce.SetFieldReducer(s, "Age", ages); err != nil {
		log.Fatal(err)
	}

	p, err := reduce.Fold[Profile](s, Profile{Name: "ada", Age: 36}, Rename{Name: "grace"}, Birthday{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%+v\n", p)

	// Output:
	// {Name:grace Age:37 Active:false}
}

func Example_invalidShape() {
	type account struct {
		id      string
		Balance int
	}
	newAccount := func(id string, balance int) account {
		return account{id: id, Balance: balance}
	}

	_, err := reduce.NewStructural(reduce.StructShape[account](
		reduce.WithConstructor(newAccount, "id", "balance"),
	))

	var shapeErr *reduce.ShapeError
	if errors.As(err, &shapeErr) {
		fmt.Println(errors.Is(err, reduce.ErrInvalidConstructorArgument), shapeErr.Param)
	}

	// Output:
	// true id
}

func Example_decoder() {
	d := reduce.NewDecoder()
	reduce.RegisterAction[Rename](d, "rename")
	reduce.RegisterAction[Birthday](d, "birthday")

	for _, raw := range []string{
		`{"type": "rename", "payload": {"Name": "grace"}}`,
		`{"type": "birthday"}`,
	} {
		action, err := d.Decode([]byte(raw))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%T %+v\n", action, action)
	}

	// Output:
	// reduce_test.Rename {Name:grace}
	// reduce_test.Birthday {}
}
