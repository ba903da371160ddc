package sqlite

import (
	"testing"
)

func TestAddTodoSmart(t *testing.T) {
	store := setupTestStore(t)

	first, deduped, err := store.AddTodoSmart("Drink water", 10)
	if err != nil {
		t.Fatalf("first add error: %v", err)
	}
	if deduped {
		t.Fatal("first add reported deduped")
	}

	second, deduped, err := store.AddTodoSmart("Drink water", 10)
	if err != nil {
		t.Fatalf("second add error: %v", err)
	}
	if !deduped {
		t.Error("duplicate within cooldown not deduped")
	}
	if second.ID != first.ID {
		t.Errorf("deduped add returned %s, want %s", second.ID, first.ID)
	}

	todos, err := store.ListTodos()
	if err != nil {
		t.Fatalf("ListTodos() error: %v", err)
	}
	if len(todos) != 1 {
		t.Errorf("got %d todos, want 1", len(todos))
	}
}

func TestToggleTodo(t *testing.T) {
	store := setupTestStore(t)

	todo, err := store.AddTodo("flip me")
	if err != nil {
		t.Fatalf("AddTodo() error: %v", err)
	}
	if todo.Done {
		t.Fatal("new todo starts done")
	}

	if err := store.ToggleTodo(todo.ID); err != nil {
		t.Fatalf("ToggleTodo() error: %v", err)
	}
	todos, _ := store.ListTodos()
	if !todos[0].Done {
		t.Error("todo not done after first toggle")
	}

	if err := store.ToggleTodo(todo.ID); err != nil {
		t.Fatalf("second ToggleTodo() error: %v", err)
	}
	todos, _ = store.ListTodos()
	if todos[0].Done {
		t.Error("todo still done after second toggle")
	}
}

func TestClearTodos(t *testing.T) {
	store := setupTestStore(t)

	for _, text := range []string{"a", "b", "c"} {
		if _, err := store.AddTodo(text); err != nil {
			t.Fatalf("AddTodo(%q) error: %v", text, err)
		}
	}

	if err := store.ClearTodos(); err != nil {
		t.Fatalf("ClearTodos() error: %v", err)
	}

	todos, err := store.ListTodos()
	if err != nil {
		t.Fatalf("ListTodos() error: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("got %d todos after clear, want 0", len(todos))
	}
}
